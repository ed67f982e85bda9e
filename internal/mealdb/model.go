// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mealdb

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// MaxIngredients is the number of ingredient/measure slots a recipe carries.
const MaxIngredients = 20

// Meal is a recipe record. Filter endpoints only populate ID, Name and
// Thumbnail.
type Meal struct {
	ID             string       `jsonapi:"primary,meals"`
	Name           string       `jsonapi:"attr,name"`
	DrinkAlternate string       `jsonapi:"attr,drink-alternate,omitempty"`
	Category       string       `jsonapi:"attr,category"`
	Area           string       `jsonapi:"attr,area"`
	Instructions   string       `jsonapi:"attr,instructions,omitempty"`
	Thumbnail      string       `jsonapi:"attr,thumbnail"`
	Tags           string       `jsonapi:"attr,tags,omitempty"`
	YouTube        string       `jsonapi:"attr,youtube,omitempty"`
	Source         string       `jsonapi:"attr,source,omitempty"`
	Ingredients    []Ingredient `jsonapi:"attr,ingredients,omitempty"`

	// Raw slots as delivered, 1-based upstream, 0-based here.
	IngredientSlots [MaxIngredients]string
	MeasureSlots    [MaxIngredients]string
}

// Ingredient is one populated ingredient slot.
type Ingredient struct {
	Name    string `json:"name" jsonapi:"attr,name"`
	Measure string `json:"measure" jsonapi:"attr,measure"`
}

// Category is a recipe category.
type Category struct {
	ID          string `jsonapi:"primary,categories"`
	Name        string `jsonapi:"attr,name"`
	Thumbnail   string `jsonapi:"attr,thumbnail"`
	Description string `jsonapi:"attr,description"`
}

// Area is a cuisine of origin. The upstream listing only carries a name.
type Area struct {
	Name string `jsonapi:"primary,areas"`
}

// ExtractIngredients pairs slots in order, keeping those whose ingredient is
// non-blank after trimming. Measures are trimmed and may be empty.
func ExtractIngredients(ingredients, measures [MaxIngredients]string) []Ingredient {
	var out []Ingredient
	for i := 0; i < MaxIngredients; i++ {
		name := strings.TrimSpace(ingredients[i])
		if name == "" {
			continue
		}
		out = append(out, Ingredient{
			Name:    name,
			Measure: strings.TrimSpace(measures[i]),
		})
	}
	return out
}

// TagList splits the comma separated tags, dropping blanks.
func (m *Meal) TagList() []string {
	var out []string
	for _, t := range strings.Split(m.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Paragraphs splits the instructions on newlines, dropping blank lines.
func (m *Meal) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(m.Instructions, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SortKey returns the value of a sortable field. Unknown fields and absent
// values are "".
func (m *Meal) SortKey(field string) string {
	switch field {
	case "name":
		return m.Name
	case "category":
		return m.Category
	case "area":
		return m.Area
	default:
		return ""
	}
}

func decodeMeal(r gjson.Result) Meal {
	m := Meal{
		ID:             r.Get("idMeal").String(),
		Name:           r.Get("strMeal").String(),
		DrinkAlternate: r.Get("strDrinkAlternate").String(),
		Category:       r.Get("strCategory").String(),
		Area:           r.Get("strArea").String(),
		Instructions:   r.Get("strInstructions").String(),
		Thumbnail:      r.Get("strMealThumb").String(),
		Tags:           r.Get("strTags").String(),
		YouTube:        r.Get("strYoutube").String(),
		Source:         r.Get("strSource").String(),
	}
	for i := 0; i < MaxIngredients; i++ {
		n := strconv.Itoa(i + 1)
		m.IngredientSlots[i] = r.Get("strIngredient" + n).String()
		m.MeasureSlots[i] = r.Get("strMeasure" + n).String()
	}
	m.Ingredients = ExtractIngredients(m.IngredientSlots, m.MeasureSlots)
	return m
}

func decodeCategory(r gjson.Result) Category {
	return Category{
		ID:          r.Get("idCategory").String(),
		Name:        r.Get("strCategory").String(),
		Thumbnail:   r.Get("strCategoryThumb").String(),
		Description: r.Get("strCategoryDescription").String(),
	}
}
