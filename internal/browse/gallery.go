// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"slices"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/mealctl/internal/mealdb"
)

// DefaultCategoryCount is how many leading categories the unfiltered gallery
// shows.
const DefaultCategoryCount = 3

// Gallery is the browse-by-filter workflow. It is not safe for concurrent
// use.
type Gallery struct {
	svc Service

	categories []mealdb.Category
	areas      []string
	selCats    []string
	selAreas   []string
	meals      []mealdb.Meal
}

func NewGallery(svc Service) *Gallery {
	return &Gallery{
		svc:        svc,
		categories: []mealdb.Category{},
		areas:      []string{},
		meals:      []mealdb.Meal{},
	}
}

// Load fetches the filter vocabulary and the default listing. Nothing is
// updated unless every fetch succeeds.
func (g *Gallery) Load(ctx context.Context) error {
	cats, areas, err := g.vocabulary(ctx)
	if err != nil {
		return wrap(ErrGalleryLoad, err)
	}
	meals, err := g.defaults(ctx, cats)
	if err != nil {
		return wrap(ErrGalleryLoad, err)
	}
	g.categories, g.areas, g.meals = cats, areas, meals
	return nil
}

// LoadVocabulary fetches categories and areas only, leaving the listing
// alone.
func (g *Gallery) LoadVocabulary(ctx context.Context) error {
	cats, areas, err := g.vocabulary(ctx)
	if err != nil {
		return wrap(ErrGalleryLoad, err)
	}
	g.categories, g.areas = cats, areas
	return nil
}

func (g *Gallery) vocabulary(ctx context.Context) ([]mealdb.Category, []string, error) {
	var (
		cats  []mealdb.Category
		areas []string
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		cats, err = g.svc.Categories(ctx)
		return err
	})
	eg.Go(func() (err error) {
		areas, err = g.svc.Areas(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return cats, areas, nil
}

func (g *Gallery) defaults(ctx context.Context, cats []mealdb.Category) ([]mealdb.Meal, error) {
	n := min(DefaultCategoryCount, len(cats))
	names := make([]string, 0, n)
	for _, c := range cats[:n] {
		names = append(names, c.Name)
	}
	return g.fetch(ctx, names, nil)
}

// fetch retrieves every list concurrently and flattens them in argument
// order, categories first.
func (g *Gallery) fetch(ctx context.Context, categories, areas []string) ([]mealdb.Meal, error) {
	lists := make([][]mealdb.Meal, len(categories)+len(areas))
	eg, ctx := errgroup.WithContext(ctx)
	for i, c := range categories {
		eg.Go(func() (err error) {
			lists[i], err = g.svc.FilterByCategory(ctx, c)
			return err
		})
	}
	for i, a := range areas {
		eg.Go(func() (err error) {
			lists[len(categories)+i], err = g.svc.FilterByArea(ctx, a)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := []mealdb.Meal{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out, nil
}

// Refresh recomputes the listing from the selection. With nothing selected
// it shows the default categories. On failure the listing is unchanged.
func (g *Gallery) Refresh(ctx context.Context) error {
	if !g.Filtered() {
		if len(g.categories) == 0 {
			return nil
		}
		meals, err := g.defaults(ctx, g.categories)
		if err != nil {
			return wrap(ErrGalleryFilter, err)
		}
		g.meals = meals
		return nil
	}

	meals, err := g.fetch(ctx, g.selCats, g.selAreas)
	if err != nil {
		return wrap(ErrGalleryFilter, err)
	}
	g.meals = Dedup(meals)
	log.WithFields(log.Fields{
		"categories": g.selCats,
		"areas":      g.selAreas,
		"meals":      len(g.meals),
	}).Debug("gallery refreshed")
	return nil
}

// ToggleCategory adds name to the selection, or removes it if present.
func (g *Gallery) ToggleCategory(name string) {
	g.selCats = toggle(g.selCats, name)
}

// ToggleArea adds name to the selection, or removes it if present.
func (g *Gallery) ToggleArea(name string) {
	g.selAreas = toggle(g.selAreas, name)
}

// ClearFilters empties both selections.
func (g *Gallery) ClearFilters() {
	g.selCats, g.selAreas = nil, nil
}

func toggle(sel []string, name string) []string {
	if i := slices.Index(sel, name); i >= 0 {
		return slices.Delete(slices.Clone(sel), i, i+1)
	}
	return append(slices.Clone(sel), name)
}

// Filtered reports whether any category or area is selected.
func (g *Gallery) Filtered() bool {
	return len(g.selCats) > 0 || len(g.selAreas) > 0
}

func (g *Gallery) Categories() []mealdb.Category { return g.categories }
func (g *Gallery) Areas() []string               { return g.areas }
func (g *Gallery) Meals() []mealdb.Meal          { return g.meals }

// SelectedCategories returns the category selection in selection order.
func (g *Gallery) SelectedCategories() []string { return slices.Clone(g.selCats) }

// SelectedAreas returns the area selection in selection order.
func (g *Gallery) SelectedAreas() []string { return slices.Clone(g.selAreas) }

// CategoryNames returns the loaded category names in service order.
func (g *Gallery) CategoryNames() []string {
	names := make([]string, 0, len(g.categories))
	for _, c := range g.categories {
		names = append(names, c.Name)
	}
	return names
}

// Dedup keeps the first meal for each id, preserving order.
func Dedup(meals []mealdb.Meal) []mealdb.Meal {
	seen := make(map[string]struct{}, len(meals))
	out := make([]mealdb.Meal, 0, len(meals))
	for _, m := range meals {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
