// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/meta"
	"github.com/staranto/mealctl/internal/tui"
)

// ErrNotTerminal is returned when ui is run without a terminal.
var ErrNotTerminal = errors.New("ui needs an interactive terminal")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// UiCommandAction runs the interactive search screen. A meal picked with
// enter is printed by id so it can be piped to dq.
func UiCommandAction(ctx context.Context, cmd *cli.Command) error {
	if !isTerminal() {
		return ErrNotTerminal
	}

	field, err := browse.ParseSortField(cmd.String("sort"))
	if err != nil {
		return err
	}
	order, err := browse.ParseSortOrder(cmd.String("order"))
	if err != nil {
		return err
	}

	client, release, err := NewService(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	model := tui.New(ctx, client, tui.WithSort(field, order))
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}

	if id := model.Chosen(); id != "" {
		fmt.Fprintln(Writer(cmd), id)
	}
	return nil
}

func UiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "sort",
			Usage:   "initial sort field (name, category, area)",
			Sources: configSources("ui", "sort"),
			Value:   string(browse.SortByName),
			Validator: func(value string) error {
				return FlagValidators(value, SortFieldValidator)
			},
		},
		&cli.StringFlag{
			Name:    "order",
			Usage:   "initial sort order (asc, desc)",
			Sources: configSources("ui", "order"),
			Value:   string(browse.Ascending),
			Validator: func(value string) error {
				return FlagValidators(value, SortOrderValidator)
			},
		},
	}
	flags = append(flags, NewServiceFlags("ui", cache.StoreMemory)...)

	return &cli.Command{
		Name:      "ui",
		Usage:     "interactive recipe search",
		UsageText: "mealctl ui [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  flags,
		Action: UiCommandAction,
	}
}
