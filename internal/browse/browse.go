// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"errors"
	"fmt"

	"github.com/staranto/mealctl/internal/mealdb"
)

// Service is the subset of the recipe client the workflows use.
type Service interface {
	SearchByName(ctx context.Context, query string) ([]mealdb.Meal, error)
	LookupByID(ctx context.Context, id string) (*mealdb.Meal, error)
	Categories(ctx context.Context) ([]mealdb.Category, error)
	Areas(ctx context.Context) ([]string, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.Meal, error)
	FilterByArea(ctx context.Context, area string) ([]mealdb.Meal, error)
}

var _ Service = (*mealdb.Client)(nil)

// User facing failures. Each wraps the underlying client error.
var (
	ErrSearchFailed  = errors.New("failed to search meals, please try again")
	ErrGalleryLoad   = errors.New("failed to load gallery data, please try again")
	ErrGalleryFilter = errors.New("failed to filter meals, please try again")
	ErrDetailLoad    = errors.New("failed to load meal details, please try again")
	ErrMealNotFound  = errors.New("meal not found")
	ErrNoMatch       = errors.New("no match")
)

func wrap(kind, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}
