// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
)

// CqCommandAction lists recipe categories.
func CqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*mealdb.Category]{
		CommandName:  "cq",
		SchemaType:   reflect.TypeOf(mealdb.Category{}),
		DefaultAttrs: []string{".id", "name", "description::60"},
		FetchFn: func(ctx context.Context, _ *cli.Command, client *mealdb.Client) ([]*mealdb.Category, error) {
			cats, err := client.Categories(ctx)
			if err != nil {
				return nil, err
			}
			return pointers(cats), nil
		},
	}
	return runner.Run(ctx, cmd)
}

func CqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "cq",
		Usage:     "category query",
		UsageText: `mealctl cq [options]`,
		Action:    CqCommandAction,
		Meta:      meta,
	}).Build()
}
