// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package mealdb

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/mealdb/mealdbtest"
)

func newTestClient(t *testing.T, rc *cache.Cache) (*Client, *mealdbtest.Server) {
	t.Helper()
	srv := mealdbtest.NewRecipeServer()
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithCache(rc)), srv
}

func TestClient_SearchByName(t *testing.T) {
	c, srv := newTestClient(t, nil)

	meals, err := c.SearchByName(context.Background(), "chicken")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, "52795", meals[0].ID)
	assert.Equal(t, "Chicken Handi", meals[0].Name)
	assert.Equal(t, "Chicken", meals[0].Category)
	assert.Equal(t, "Indian", meals[0].Area)
	assert.Equal(t, "", meals[2].Category, "null fields decode as empty")
	assert.Equal(t, 1, srv.Hits("/search.php?s=chicken"))
}

func TestClient_EmptyCollections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null", body: `{"meals":null}`},
		{name: "missing", body: `{}`},
		{name: "empty", body: `{"meals":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t, nil)
			srv.Handle("/search.php?s=zzz", tt.body)

			meals, err := c.SearchByName(context.Background(), "zzz")
			assert.NoError(t, err)
			assert.NotNil(t, meals)
			assert.Empty(t, meals)
		})
	}
}

func TestClient_LookupByID(t *testing.T) {
	c, _ := newTestClient(t, nil)
	ctx := context.Background()

	m, err := c.LookupByID(ctx, "52795")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Chicken Handi", m.Name)
	assert.Equal(t, "https://www.youtube.com/watch?v=IO0issT0Rmc", m.YouTube)
	assert.Equal(t, "https://recipes.test/handi", m.Source)
	assert.Equal(t, []Ingredient{
		{Name: "Chicken", Measure: "1.2 kg"},
		{Name: "Onion", Measure: "5 thinly sliced"},
		{Name: "Ginger", Measure: ""},
		{Name: "Coriander", Measure: "garnish"},
	}, m.Ingredients)

	m, err = c.LookupByID(ctx, "1")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not-found", Reason(err))
}

func TestClient_CategoriesAndAreas(t *testing.T) {
	c, _ := newTestClient(t, nil)
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 4)
	assert.Equal(t, Category{
		ID:          "1",
		Name:        "Beef",
		Thumbnail:   "https://img.test/beef.png",
		Description: "Beef is the culinary name for meat from cattle.",
	}, cats[0])

	areas, err := c.Areas(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"American", "Indian", "Italian"}, areas)
}

func TestClient_Filters(t *testing.T) {
	c, _ := newTestClient(t, nil)
	ctx := context.Background()

	beef, err := c.FilterByCategory(ctx, "Beef")
	require.NoError(t, err)
	assert.Len(t, beef, 2)
	assert.Equal(t, "Beef Wellington", beef[0].Name)
	assert.Equal(t, "https://img.test/wellington.jpg", beef[0].Thumbnail)

	indian, err := c.FilterByArea(ctx, "Indian")
	require.NoError(t, err)
	assert.Len(t, indian, 2)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
		reason string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops", kind: ErrTransport, reason: "transport"},
		{name: "not json", status: http.StatusOK, body: "<html>", kind: ErrMalformed, reason: "malformed"},
		{name: "empty body", status: http.StatusOK, body: "", kind: ErrMalformed, reason: "malformed"},
		{name: "meals not a list", status: http.StatusOK, body: `{"meals":"nope"}`, kind: ErrMalformed, reason: "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := cache.New(nil)
			c, srv := newTestClient(t, rc)
			srv.HandleStatus("/filter.php?c=Broken", tt.status, tt.body)

			meals, err := c.FilterByCategory(context.Background(), "Broken")
			assert.NotNil(t, meals)
			assert.Empty(t, meals)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.reason, Reason(err))

			var ue *UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, "filter-category", ue.Op)
			assert.Equal(t, srv.URL+"/filter.php?c=Broken", ue.URL)
		})
	}
}

func TestClient_FailuresAreNotCached(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{name: "bad gateway", status: http.StatusBadGateway, body: "", kind: ErrTransport},
		{name: "not json", status: http.StatusOK, body: "<html>", kind: ErrMalformed},
		{name: "wrong shape", status: http.StatusOK, body: `{"categories":"nope"}`, kind: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := cache.New(nil)
			c, srv := newTestClient(t, rc)
			ctx := context.Background()
			srv.HandleStatus("/categories.php", tt.status, tt.body)

			_, err := c.Categories(ctx)
			assert.ErrorIs(t, err, tt.kind)

			entries, err := rc.Entries(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			srv.Handle("/categories.php", mealdbtest.Categories)
			cats, err := c.Categories(ctx)
			assert.NoError(t, err)
			assert.Len(t, cats, 4)
			assert.Equal(t, 2, srv.Hits("/categories.php"))

			entries, err = rc.Entries(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := mealdbtest.NewServer()
	u := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(u))
	areas, err := c.Areas(context.Background())
	assert.Empty(t, areas)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_CacheReadThrough(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rc := cache.New(cache.NewMemoryStore(), cache.WithClock(func() time.Time { return now }))
	c, srv := newTestClient(t, rc)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		meals, err := c.SearchByName(ctx, "chicken")
		require.NoError(t, err)
		assert.Len(t, meals, 3)
	}
	assert.Equal(t, 1, srv.Hits("/search.php?s=chicken"), "identical searches inside the ttl hit upstream once")

	now = now.Add(cache.DefaultTTL)
	_, err := c.SearchByName(ctx, "chicken")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Hits("/search.php?s=chicken"), "expired entries are refetched")
}

func TestClient_CacheKeysAreDistinct(t *testing.T) {
	rc := cache.New(nil)
	c, srv := newTestClient(t, rc)
	ctx := context.Background()

	_, _ = c.FilterByCategory(ctx, "Beef")
	_, _ = c.FilterByArea(ctx, "Beef")
	_, _ = c.SearchByName(ctx, "a&c=Beef")

	entries, err := rc.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 3, srv.TotalHits())
}

func TestClient_Endpoint(t *testing.T) {
	c := NewClient(WithBaseURL("https://api.test/v1/"))
	assert.Equal(t, "https://api.test/v1", c.BaseURL())
	assert.Equal(t, "https://api.test/v1/categories.php", c.endpoint("categories.php", nil))
	assert.Equal(t, "https://api.test/v1/search.php?s=beef+stew", c.endpoint("search.php", map[string][]string{"s": {"beef stew"}}))

	assert.Equal(t, DefaultBaseURL, NewClient().BaseURL())
}
