// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
)

// debounceMsg fires once the input has been quiet for browse.Debounce. It is
// ignored unless seq is still the newest keystroke.
type debounceMsg struct {
	seq   int
	query string
}

// resultsMsg carries a finished search back to the model.
type resultsMsg struct {
	ticket browse.Ticket
	meals  []mealdb.Meal
	err    error
}

func debounce(seq int, query string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

func fetch(ctx context.Context, s *browse.Search, t browse.Ticket) tea.Cmd {
	return func() tea.Msg {
		meals, err := s.Fetch(ctx, t.Query)
		return resultsMsg{ticket: t, meals: meals, err: err}
	}
}
