// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package mealdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIngredients(t *testing.T) {
	var ing, meas [MaxIngredients]string
	ing[0], meas[0] = "Chicken", "1 kg"
	ing[1], meas[1] = "  Salt ", " pinch "
	ing[2], meas[2] = "", "ignored"
	ing[3], meas[3] = "\t", "ignored"
	ing[4] = "Water"
	ing[19], meas[19] = "Mint", "garnish"

	got := ExtractIngredients(ing, meas)
	assert.Equal(t, []Ingredient{
		{Name: "Chicken", Measure: "1 kg"},
		{Name: "Salt", Measure: "pinch"},
		{Name: "Water", Measure: ""},
		{Name: "Mint", Measure: "garnish"},
	}, got)

	var none [MaxIngredients]string
	assert.Empty(t, ExtractIngredients(none, none))
}

func TestMeal_TagList(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{name: "empty", tags: "", want: nil},
		{name: "single", tags: "Curry", want: []string{"Curry"}},
		{name: "trimmed", tags: "Curry, Spicy ,Meat", want: []string{"Curry", "Spicy", "Meat"}},
		{name: "blanks dropped", tags: "Curry,,  ,", want: []string{"Curry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Meal{Tags: tt.tags}
			assert.Equal(t, tt.want, m.TagList())
		})
	}
}

func TestMeal_Paragraphs(t *testing.T) {
	tests := []struct {
		name  string
		instr string
		want  []string
	}{
		{name: "empty", instr: "", want: nil},
		{name: "one line", instr: "Boil.", want: []string{"Boil."}},
		{name: "crlf and blanks", instr: "Boil.\r\n\r\nServe.\n   \n", want: []string{"Boil.", "Serve."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Meal{Instructions: tt.instr}
			assert.Equal(t, tt.want, m.Paragraphs())
		})
	}
}

func TestMeal_SortKey(t *testing.T) {
	m := Meal{Name: "Pad Thai", Category: "Noodles", Area: "Thai"}
	assert.Equal(t, "Pad Thai", m.SortKey("name"))
	assert.Equal(t, "Noodles", m.SortKey("category"))
	assert.Equal(t, "Thai", m.SortKey("area"))
	assert.Equal(t, "", m.SortKey("calories"))
}

func TestUpstreamError(t *testing.T) {
	err := &UpstreamError{Op: "search", URL: "u", Kind: ErrTransport}
	assert.Equal(t, "search: recipe service unreachable", err.Error())
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "", Reason(nil))
}
