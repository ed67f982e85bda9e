// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
)

// GqCommandAction is the action handler for the "gq" subcommand. Without
// filters it lists the leading categories; otherwise the union of every
// named category and area. Names are matched loosely against the live
// vocabulary.
func GqCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*mealdb.Meal]{
		CommandName:  "gq",
		SchemaType:   reflect.TypeOf(mealdb.Meal{}),
		DefaultAttrs: []string{".id", "name"},
		FetchFn: func(ctx context.Context, cmd *cli.Command, client *mealdb.Client) ([]*mealdb.Meal, error) {
			g := browse.NewGallery(client)

			cats, areas := cmd.StringSlice("category"), cmd.StringSlice("area")
			if len(cats) == 0 && len(areas) == 0 {
				if err := g.Load(ctx); err != nil {
					return nil, err
				}
				return pointers(g.Meals()), nil
			}

			if err := g.LoadVocabulary(ctx); err != nil {
				return nil, err
			}
			cats, err := browse.ResolveAll(cats, g.CategoryNames())
			if err != nil {
				return nil, err
			}
			areas, err = browse.ResolveAll(areas, g.Areas())
			if err != nil {
				return nil, err
			}
			for _, c := range cats {
				g.ToggleCategory(c)
			}
			for _, a := range areas {
				g.ToggleArea(a)
			}
			log.Debugf("gallery filters: categories=%v areas=%v", cats, areas)

			if err := g.Refresh(ctx); err != nil {
				return nil, err
			}
			return pointers(g.Meals()), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// GqCommandBuilder constructs the cli.Command definition for the "gq" command.
func GqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "gq",
		Usage:     "gallery query by category and area",
		UsageText: `mealctl gq [--category NAME]... [--area NAME]... [options]`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "category",
				Aliases: []string{"C"},
				Usage:   "include meals of this category (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "area",
				Aliases: []string{"A"},
				Usage:   "include meals from this area (repeatable)",
			},
		},
		Action: GqCommandAction,
		Meta:   meta,
	}).Build()
}
