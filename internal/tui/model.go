// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/mealdb"
)

type styles struct {
	header   lipgloss.Style
	active   lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	failed   lipgloss.Style
}

// Model is the bubbletea model for the search screen.
type Model struct {
	ctx    context.Context
	search *browse.Search
	input  textinput.Model
	delay  time.Duration
	seq    int
	cursor int
	width  int
	height int
	chosen string
	styles styles
}

// Option configures a Model.
type Option func(*Model)

// WithDebounce overrides browse.Debounce.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) { m.delay = d }
}

// WithSort sets the initial sort.
func WithSort(field browse.SortField, order browse.SortOrder) Option {
	return func(m *Model) { m.search.SetSort(field, order) }
}

// New returns a Model searching through svc.
func New(ctx context.Context, svc browse.Service, opts ...Option) *Model {
	in := textinput.New()
	in.Placeholder = "search meals"
	in.Prompt = "> "
	in.CharLimit = 120
	in.Focus()

	m := &Model{
		ctx:    ctx,
		search: browse.NewSearch(svc),
		input:  in,
		delay:  browse.Debounce,
		styles: styles{
			header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00")),
			active:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#f6be00")),
			selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0")),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			failed:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Chosen is the id of the meal picked with enter, or "".
func (m *Model) Chosen() string {
	return m.chosen
}

// Search exposes the underlying workflow.
func (m *Model) Search() *browse.Search {
	return m.search
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil
	case debounceMsg:
		return m.handleDebounce(msg)
	case resultsMsg:
		return m.handleResults(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyF1:
		m.toggle(browse.SortByName)
		return m, nil
	case tea.KeyF2:
		m.toggle(browse.SortByCategory)
		return m, nil
	case tea.KeyF3:
		m.toggle(browse.SortByArea)
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.visible(m.search.Sorted()))-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		rows := m.visible(m.search.Sorted())
		if m.cursor < len(rows) {
			m.chosen = rows[m.cursor].ID
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	return m, tea.Batch(cmd, debounce(m.seq, m.input.Value(), m.delay))
}

func (m *Model) toggle(field browse.SortField) {
	m.search.ToggleSort(field)
	m.cursor = 0
}

func (m *Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	t := m.search.Begin(msg.query)
	log.WithFields(log.Fields{"ticket": t.Seq, "query": t.Query}).Debug("search issued")
	return m, fetch(m.ctx, m.search, t)
}

func (m *Model) handleResults(msg resultsMsg) (tea.Model, tea.Cmd) {
	if m.search.Complete(msg.ticket, msg.meals, msg.err) {
		m.cursor = 0
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	field, order := m.search.Sort()
	b.WriteString(m.header(field, order))
	b.WriteString("\n")

	switch {
	case m.search.Err() != nil:
		b.WriteString(m.styles.failed.Render(m.search.Err().Error()))
		b.WriteString("\n")
	case m.search.Pending():
		b.WriteString(m.styles.muted.Render("searching..."))
		b.WriteString("\n")
	case m.search.Message() != "":
		b.WriteString(m.styles.muted.Render(m.search.Message()))
		b.WriteString("\n")
	}

	rows := m.search.Sorted()
	for i, meal := range m.visible(rows) {
		line := row(meal)
		if i == m.cursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("f1 name  f2 category  f3 area  enter open  esc quit"))
	b.WriteString("\n")
	return b.String()
}

// clampCursor keeps the cursor on a row that View shows.
func (m *Model) clampCursor() {
	if n := len(m.visible(m.search.Sorted())); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// visible trims rows to the window height, leaving room for the chrome.
func (m *Model) visible(rows []mealdb.Meal) []mealdb.Meal {
	if m.height <= 0 {
		return rows
	}
	room := m.height - 7
	if room < 1 {
		room = 1
	}
	if len(rows) > room {
		return rows[:room]
	}
	return rows
}

func (m *Model) header(field browse.SortField, order browse.SortOrder) string {
	arrow := "^"
	if order == browse.Descending {
		arrow = "v"
	}
	cols := []struct {
		field browse.SortField
		title string
		width int
	}{
		{browse.SortByName, "Name", 40},
		{browse.SortByCategory, "Category", 14},
		{browse.SortByArea, "Area", 12},
	}

	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		title := c.title
		style := m.styles.header
		if c.field == field {
			title += " " + arrow
			style = m.styles.active
		}
		parts = append(parts, style.Render(fmt.Sprintf("%-*s", c.width, title)))
	}
	return "  " + strings.Join(parts, " ")
}

func row(meal mealdb.Meal) string {
	return fmt.Sprintf("%-40s %-14s %-12s", truncate(meal.Name, 40), truncate(meal.Category, 14), truncate(meal.Area, 12))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
