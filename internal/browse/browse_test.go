// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package browse

import (
	"context"
	"testing"

	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/mealdb/mealdbtest"
)

func newRecipeService(t *testing.T) (*mealdb.Client, *mealdbtest.Server) {
	t.Helper()
	srv := mealdbtest.NewRecipeServer()
	t.Cleanup(srv.Close)
	return mealdb.NewClient(mealdb.WithBaseURL(srv.URL)), srv
}

// stubService answers from maps and fails with err where one is set.
type stubService struct {
	search     map[string][]mealdb.Meal
	lookup     map[string]*mealdb.Meal
	categories []mealdb.Category
	byCategory map[string][]mealdb.Meal
	err        error
}

func (s *stubService) SearchByName(_ context.Context, q string) ([]mealdb.Meal, error) {
	if s.err != nil {
		return []mealdb.Meal{}, s.err
	}
	return s.search[q], nil
}

func (s *stubService) LookupByID(_ context.Context, id string) (*mealdb.Meal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lookup[id], nil
}

func (s *stubService) Categories(context.Context) ([]mealdb.Category, error) {
	return s.categories, s.err
}

func (s *stubService) Areas(context.Context) ([]string, error) {
	return []string{}, s.err
}

func (s *stubService) FilterByCategory(_ context.Context, c string) ([]mealdb.Meal, error) {
	if s.err != nil {
		return []mealdb.Meal{}, s.err
	}
	return s.byCategory[c], nil
}

func (s *stubService) FilterByArea(context.Context, string) ([]mealdb.Meal, error) {
	return []mealdb.Meal{}, s.err
}

func ids(meals []mealdb.Meal) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.ID)
	}
	return out
}
