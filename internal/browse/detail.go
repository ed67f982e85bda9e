// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"errors"
	"slices"

	"github.com/staranto/mealctl/internal/mealdb"
)

// Detail is a single recipe plus its position among the meals of the same
// category.
type Detail struct {
	svc Service

	meal  *mealdb.Meal
	list  []mealdb.Meal
	index int
}

func NewDetail(svc Service) *Detail {
	return &Detail{svc: svc, list: []mealdb.Meal{}}
}

// Load fetches the meal for id and its category listing. State is replaced
// only on success.
func (d *Detail) Load(ctx context.Context, id string) error {
	meal, err := d.svc.LookupByID(ctx, id)
	if err != nil {
		if errors.Is(err, mealdb.ErrNotFound) {
			return wrap(ErrMealNotFound, err)
		}
		return wrap(ErrDetailLoad, err)
	}
	if meal == nil {
		return ErrMealNotFound
	}

	list := []mealdb.Meal{}
	if meal.Category != "" {
		list, err = d.svc.FilterByCategory(ctx, meal.Category)
		if err != nil {
			return wrap(ErrDetailLoad, err)
		}
	}

	d.meal = meal
	d.list = list
	d.index = max(0, slices.IndexFunc(list, func(m mealdb.Meal) bool { return m.ID == meal.ID }))
	return nil
}

// Meal returns the loaded meal, or nil before a successful Load.
func (d *Detail) Meal() *mealdb.Meal {
	return d.meal
}

// Neighbors returns the category listing used for navigation.
func (d *Detail) Neighbors() []mealdb.Meal {
	return d.list
}

// Position returns the zero-based index in the category listing and its
// length.
func (d *Detail) Position() (index, total int) {
	return d.index, len(d.list)
}

// Navigable reports whether there is anywhere else to go.
func (d *Detail) Navigable() bool {
	return len(d.list) > 1
}

// Prev returns the id before the current one, wrapping to the last.
func (d *Detail) Prev() (string, bool) {
	n := len(d.list)
	if n == 0 {
		return "", false
	}
	i := d.index - 1
	if i < 0 {
		i = n - 1
	}
	return d.list[i].ID, true
}

// Next returns the id after the current one, wrapping to the first.
func (d *Detail) Next() (string, bool) {
	n := len(d.list)
	if n == 0 {
		return "", false
	}
	return d.list[(d.index+1)%n].ID, true
}
