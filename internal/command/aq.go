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

// AqCommandAction lists cuisines of origin.
func AqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*mealdb.Area]{
		CommandName:  "aq",
		SchemaType:   reflect.TypeOf(mealdb.Area{}),
		DefaultAttrs: []string{".id:area"},
		FetchFn: func(ctx context.Context, _ *cli.Command, client *mealdb.Client) ([]*mealdb.Area, error) {
			names, err := client.Areas(ctx)
			if err != nil {
				return nil, err
			}
			areas := make([]*mealdb.Area, 0, len(names))
			for _, n := range names {
				areas = append(areas, &mealdb.Area{Name: n})
			}
			return areas, nil
		},
	}
	return runner.Run(ctx, cmd)
}

func AqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "aq",
		Usage:     "area query",
		UsageText: `mealctl aq [options]`,
		Action:    AqCommandAction,
		Meta:      meta,
	}).Build()
}
