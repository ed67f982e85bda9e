// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/mealdb/mealdbtest"
)

func newModel(t *testing.T) (*Model, *mealdbtest.Server) {
	t.Helper()
	srv := mealdbtest.NewRecipeServer()
	t.Cleanup(srv.Close)
	client := mealdb.NewClient(mealdb.WithBaseURL(srv.URL))
	return New(context.Background(), client, WithDebounce(0)), srv
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// settle runs the debounce and fetch for the newest keystroke.
func settle(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(debounceMsg{seq: m.seq, query: m.input.Value()})
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(resultsMsg)
	require.True(t, ok)
	m.Update(res)
}

func TestModel_TypeAndSearch(t *testing.T) {
	m, srv := newModel(t)

	typeText(m, "chicken")
	assert.Equal(t, "chicken", m.input.Value())
	assert.Equal(t, 1, m.seq)
	assert.Equal(t, 0, srv.TotalHits(), "nothing is fetched before the debounce fires")

	settle(t, m)
	assert.Len(t, m.search.Results(), 3)
	assert.False(t, m.search.Pending())
	assert.Equal(t, 1, srv.Hits("/search.php?s=chicken"))

	view := m.View()
	assert.Contains(t, view, "Chicken Handi")
	assert.Contains(t, view, "Name ^")
}

func TestModel_StaleDebounceIgnored(t *testing.T) {
	m, srv := newModel(t)

	typeText(m, "chi")
	typeText(m, "cken")
	assert.Equal(t, 2, m.seq)

	_, cmd := m.Update(debounceMsg{seq: 1, query: "chi"})
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.search.Query())

	settle(t, m)
	assert.Equal(t, "chicken", m.search.Query())
	assert.Equal(t, 0, srv.Hits("/search.php?s=chi"))
}

func TestModel_StaleResultsDropped(t *testing.T) {
	m, _ := newModel(t)

	old := m.search.Begin("beef")
	current := m.search.Begin("chicken")

	m.Update(resultsMsg{ticket: current, meals: []mealdb.Meal{{ID: "1", Name: "New"}}})
	m.Update(resultsMsg{ticket: old, meals: []mealdb.Meal{{ID: "2", Name: "Old"}}})

	require.Len(t, m.search.Results(), 1)
	assert.Equal(t, "New", m.search.Results()[0].Name)
}

func TestModel_SortKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyType
		wantField browse.SortField
		wantOrder browse.SortOrder
	}{
		{name: "f1 flips name", keys: []tea.KeyType{tea.KeyF1}, wantField: browse.SortByName, wantOrder: browse.Descending},
		{name: "f2 category", keys: []tea.KeyType{tea.KeyF2}, wantField: browse.SortByCategory, wantOrder: browse.Ascending},
		{name: "f3 twice", keys: []tea.KeyType{tea.KeyF3, tea.KeyF3}, wantField: browse.SortByArea, wantOrder: browse.Descending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newModel(t)
			for _, k := range tt.keys {
				m.Update(tea.KeyMsg{Type: k})
			}
			field, order := m.search.Sort()
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestModel_CursorAndEnter(t *testing.T) {
	m, _ := newModel(t)
	typeText(m, "chicken")
	settle(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	// sorted by name: Chicken Fajita, Chicken Handi, chicken soup
	assert.Equal(t, "53000", m.Chosen())
}

func TestModel_CursorStaysOnVisibleRows(t *testing.T) {
	m, _ := newModel(t)
	typeText(m, "chicken")
	settle(t, m)

	// Room for two of the three rows.
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 9})
	for i := 0; i < 5; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 1, m.cursor)
	assert.NotContains(t, m.View(), "chicken soup")

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 8})
	assert.Equal(t, 0, m.cursor, "shrinking the window pulls the cursor back")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "52818", m.Chosen())
}

func TestModel_Messages(t *testing.T) {
	m, srv := newModel(t)
	srv.Handle("/search.php?s=zzz", `{"meals":null}`)

	typeText(m, "zzz")
	assert.Contains(t, m.View(), "Name ^")

	settle(t, m)
	assert.Contains(t, m.View(), `no meals found for "zzz"`)

	srv.HandleStatus("/search.php?s=zzzz", 500, "")
	typeText(m, "z")
	settle(t, m)
	assert.ErrorIs(t, m.search.Err(), browse.ErrSearchFailed)
	assert.Contains(t, m.View(), m.search.Err().Error())
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
