// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
	"github.com/staranto/mealctl/internal/output"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// DqCommandAction is the action handler for the "dq" subcommand. It shows one
// recipe, or its neighbor within the category with --next/--prev.
func DqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(mealdb.Meal{})) {
		return nil
	}

	id := strings.TrimSpace(cmd.Args().First())
	if id == "" {
		return errors.New("a meal id is required")
	}
	if cmd.Bool("next") && cmd.Bool("prev") {
		return errors.New("--next and --prev are mutually exclusive")
	}

	client, release, err := NewService(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	d := browse.NewDetail(client)
	if err := d.Load(ctx, id); err != nil {
		return err
	}

	var (
		target string
		ok     bool
	)
	switch {
	case cmd.Bool("next"):
		target, ok = d.Next()
	case cmd.Bool("prev"):
		target, ok = d.Prev()
	}
	if ok && target != id {
		log.Debugf("moving from %s to %s", id, target)
		if err := d.Load(ctx, target); err != nil {
			return err
		}
	}

	meal := d.Meal()
	if cmd.Bool("copy") {
		if err := clipboardWrite(ShoppingList(meal)); err != nil {
			return fmt.Errorf("failed to copy ingredients: %w", err)
		}
		fmt.Fprintf(ErrWriter(cmd), "copied %d ingredients\n", len(meal.Ingredients))
	}

	if cmd.String("output") == output.FormatText {
		prev, _ := d.Prev()
		next, _ := d.Next()
		index, total := d.Position()
		return output.RenderDetail(Writer(cmd), output.DetailView{
			Meal:  meal,
			Index: index,
			Total: total,
			Prev:  prev,
			Next:  next,
		}, cmd.Bool("color"))
	}

	al, err := BuildAttrs(cmd, ".id", "name", "category", "area", "tags", "ingredients", "instructions", "youtube", "source", "thumbnail")
	if err != nil {
		return err
	}
	return EmitJSONAPISlice([]*mealdb.Meal{meal}, al, cmd)
}

// ShoppingList renders the ingredients one per line, measure first.
func ShoppingList(m *mealdb.Meal) string {
	var b strings.Builder
	for _, ing := range m.Ingredients {
		if ing.Measure != "" {
			b.WriteString(ing.Measure + " ")
		}
		b.WriteString(ing.Name + "\n")
	}
	return b.String()
}

// DqCommandBuilder constructs the cli.Command definition for the "dq" command.
func DqCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "dq",
		Usage:     "recipe detail query",
		UsageText: `mealctl dq [--next|--prev] [--copy] [options] ID`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "next",
				Usage:       "show the next recipe in the same category",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "prev",
				Usage:       "show the previous recipe in the same category",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "copy",
				Usage:       "copy the ingredient list to the clipboard",
				HideDefault: true,
			},
		},
		Action: DqCommandAction,
		Meta:   meta,
	}).Build()
}
