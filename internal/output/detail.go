// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/staranto/mealctl/internal/mealdb"
)

// DetailView is a recipe plus where it sits in its category.
type DetailView struct {
	Meal  *mealdb.Meal
	Index int
	Total int
	Prev  string
	Next  string
}

type detailStyles struct {
	title, heading, chip, measure, link lipgloss.Style
}

func newDetailStyles(color bool) detailStyles {
	s := detailStyles{
		title:   lipgloss.NewStyle(),
		heading: lipgloss.NewStyle(),
		chip:    lipgloss.NewStyle(),
		measure: lipgloss.NewStyle(),
		link:    lipgloss.NewStyle(),
	}
	if !color {
		return s
	}

	title, even, odd := getColors("colors")
	s.title = s.title.Bold(true).Foreground(lipgloss.Color(title))
	s.heading = s.heading.Bold(true).Underline(true)
	s.chip = s.chip.Foreground(lipgloss.Color(odd))
	s.measure = s.measure.Foreground(lipgloss.Color(even)).Faint(true)
	s.link = s.link.Foreground(lipgloss.Color(odd)).Underline(true)
	return s
}

// RenderDetail writes the recipe card. Empty sections are omitted and the
// navigation line only appears when there is more than one recipe in the
// category.
func RenderDetail(w io.Writer, v DetailView, color bool) error {
	if v.Meal == nil {
		return fmt.Errorf("no recipe to render")
	}
	m := v.Meal
	st := newDetailStyles(color)

	var b strings.Builder
	b.WriteString(st.title.Render(m.Name) + "\n")

	var chips []string
	for _, c := range append([]string{m.Category, m.Area}, m.TagList()...) {
		if c != "" {
			chips = append(chips, st.chip.Render("["+c+"]"))
		}
	}
	if len(chips) > 0 {
		b.WriteString(strings.Join(chips, " ") + "\n")
	}

	if len(m.Ingredients) > 0 {
		b.WriteString("\n" + st.heading.Render("Ingredients") + "\n")
		width := 0
		for _, ing := range m.Ingredients {
			width = max(width, lipgloss.Width(ing.Measure))
		}
		for _, ing := range m.Ingredients {
			gap := strings.Repeat(" ", width-lipgloss.Width(ing.Measure)+2)
			b.WriteString("  " + st.measure.Render(ing.Measure) + gap + ing.Name + "\n")
		}
	}

	if paras := m.Paragraphs(); len(paras) > 0 {
		b.WriteString("\n" + st.heading.Render("Instructions") + "\n")
		for i, p := range paras {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("  " + p + "\n")
		}
	}

	links := [][2]string{
		{"Video", m.YouTube},
		{"Source", m.Source},
		{"Image", m.Thumbnail},
	}
	wroteLink := false
	for _, l := range links {
		if l[1] == "" {
			continue
		}
		if !wroteLink {
			b.WriteString("\n")
			wroteLink = true
		}
		fmt.Fprintf(&b, "%-8s%s\n", l[0], st.link.Render(l[1]))
	}

	if v.Total > 1 {
		fmt.Fprintf(&b, "\n<- %s   %d of %d   %s ->\n", v.Prev, v.Index+1, v.Total, v.Next)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
