// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
)

// SqCommandAction is the action handler for the "sq" subcommand. It searches
// recipes by name and emits them ordered by name unless --sort says
// otherwise.
func SqCommandAction(ctx context.Context, cmd *cli.Command) error {
	query := strings.Join(cmd.Args().Slice(), " ")

	runner := &QueryActionRunner[*mealdb.Meal]{
		CommandName:  "sq",
		SchemaType:   reflect.TypeOf(mealdb.Meal{}),
		DefaultAttrs: []string{".id", "name", "category", "area"},
		FetchFn: func(ctx context.Context, cmd *cli.Command, client *mealdb.Client) ([]*mealdb.Meal, error) {
			s := browse.NewSearch(client)
			if _, err := s.Run(ctx, query); err != nil {
				return nil, err
			}
			if msg := s.Message(); msg != "" {
				log.Info(msg)
				fmt.Fprintln(ErrWriter(cmd), msg)
			}
			return pointers(s.Sorted()), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// SqCommandBuilder constructs the cli.Command definition for the "sq" command.
func SqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "sq",
		Usage:     "search recipes by name",
		UsageText: `mealctl sq [options] QUERY...`,
		Action:    SqCommandAction,
		Meta:      meta,
	}).Build()
}

// pointers adapts a value slice for jsonapi, which wants []*T.
func pointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}
