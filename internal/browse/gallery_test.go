// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package browse

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mealctl/internal/mealdb"
)

func TestGallery_Load(t *testing.T) {
	svc, srv := newRecipeService(t)
	g := NewGallery(svc)

	require.NoError(t, g.Load(context.Background()))
	assert.Equal(t, []string{"Beef", "Chicken", "Dessert", "Lamb"}, g.CategoryNames())
	assert.Equal(t, []string{"American", "Indian", "Italian"}, g.Areas())
	assert.Equal(t, []string{"52803", "52834", "52795", "52818", "52940", "52768"}, ids(g.Meals()),
		"first three categories in category order")
	assert.Equal(t, 0, srv.Hits("/filter.php?c=Lamb"))
	assert.False(t, g.Filtered())
}

func TestGallery_LoadFailureKeepsState(t *testing.T) {
	tests := []struct {
		name  string
		route string
	}{
		{name: "areas", route: "/list.php?a=list"},
		{name: "categories", route: "/categories.php"},
		{name: "default listing", route: "/filter.php?c=Chicken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, srv := newRecipeService(t)
			srv.HandleStatus(tt.route, http.StatusInternalServerError, "")
			g := NewGallery(svc)

			err := g.Load(context.Background())
			assert.ErrorIs(t, err, ErrGalleryLoad)
			assert.ErrorIs(t, err, mealdb.ErrTransport)
			assert.Empty(t, g.Categories())
			assert.Empty(t, g.Areas())
			assert.Empty(t, g.Meals())
		})
	}
}

func TestGallery_Filters(t *testing.T) {
	svc, _ := newRecipeService(t)
	g := NewGallery(svc)
	ctx := context.Background()
	require.NoError(t, g.Load(ctx))

	g.ToggleCategory("Chicken")
	g.ToggleArea("Indian")
	require.NoError(t, g.Refresh(ctx))
	assert.Equal(t, []string{"52795", "52818", "52940", "52807"}, ids(g.Meals()), "union, first occurrence wins")

	g.ToggleCategory("Beef")
	assert.Equal(t, []string{"Chicken", "Beef"}, g.SelectedCategories())
	require.NoError(t, g.Refresh(ctx))
	assert.Equal(t, []string{"52795", "52818", "52940", "52803", "52834", "52807"}, ids(g.Meals()))

	g.ToggleCategory("Chicken")
	g.ToggleCategory("Beef")
	require.NoError(t, g.Refresh(ctx))
	assert.Equal(t, []string{"52795", "52807"}, ids(g.Meals()))

	g.ClearFilters()
	assert.False(t, g.Filtered())
	require.NoError(t, g.Refresh(ctx))
	assert.Len(t, g.Meals(), 6, "back to the default listing")
}

func TestGallery_RefreshFailure(t *testing.T) {
	svc, srv := newRecipeService(t)
	g := NewGallery(svc)
	ctx := context.Background()
	require.NoError(t, g.Load(ctx))

	srv.HandleStatus("/filter.php?a=Italian", http.StatusBadGateway, "")
	g.ToggleCategory("Dessert")
	g.ToggleArea("Italian")

	err := g.Refresh(ctx)
	assert.ErrorIs(t, err, ErrGalleryFilter)
	assert.Len(t, g.Meals(), 6, "listing untouched")
}

func TestGallery_RefreshBeforeLoad(t *testing.T) {
	svc, srv := newRecipeService(t)
	g := NewGallery(svc)

	require.NoError(t, g.Refresh(context.Background()))
	assert.Empty(t, g.Meals())
	assert.Equal(t, 0, srv.TotalHits())

	require.NoError(t, g.LoadVocabulary(context.Background()))
	assert.Len(t, g.Categories(), 4)
	assert.Empty(t, g.Meals())
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name string
		in   []mealdb.Meal
		want []string
	}{
		{name: "empty", in: nil, want: []string{}},
		{name: "no dups", in: []mealdb.Meal{{ID: "1"}, {ID: "2"}}, want: []string{"1", "2"}},
		{name: "first wins", in: []mealdb.Meal{{ID: "1", Name: "a"}, {ID: "2"}, {ID: "1", Name: "b"}}, want: []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedup(tt.in)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	got := Dedup([]mealdb.Meal{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}})
	assert.Equal(t, "a", got[0].Name)
}
