// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_GetPut(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{name: "fresh", advance: 0, wantHit: true},
		{name: "just inside ttl", advance: DefaultTTL - time.Nanosecond, wantHit: true},
		{name: "exactly ttl", advance: DefaultTTL, wantHit: false},
		{name: "long expired", advance: time.Hour, wantHit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := newClock()
			c := New(NewMemoryStore(), WithClock(clk.Now))

			require.NoError(t, c.Put(ctx, "categories", []byte(`{"categories":[]}`)))
			clk.Advance(tt.advance)

			got, ok := c.Get(ctx, "categories")
			assert.Equal(t, tt.wantHit, ok)
			if tt.wantHit {
				assert.Equal(t, `{"categories":[]}`, string(got))
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestCache_MissingKey(t *testing.T) {
	c := New(nil)
	got, ok := c.Get(context.Background(), "meal_52772")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_ExpiredEntryIsRetained(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	store := NewMemoryStore()
	c := New(store, WithClock(clk.Now))

	require.NoError(t, c.Put(ctx, "areas", []byte("v1")))
	clk.Advance(2 * DefaultTTL)

	_, ok := c.Get(ctx, "areas")
	assert.False(t, ok)

	e, ok, err := store.Get(ctx, "areas")
	require.NoError(t, err)
	assert.True(t, ok, "expired entries stay until overwritten")
	assert.Equal(t, "v1", string(e.Value))
}

func TestCache_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	c := New(NewMemoryStore(), WithClock(clk.Now))

	require.NoError(t, c.Put(ctx, "k", []byte("old")))
	clk.Advance(DefaultTTL + time.Second)
	require.NoError(t, c.Put(ctx, "k", []byte("new")))

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok, "overwrite refreshes the timestamp")
	assert.Equal(t, "new", string(got))
}

func TestCache_ReturnsStoredSlice(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())
	v := []byte("payload")
	require.NoError(t, c.Put(ctx, "k", v))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Same(t, &v[0], &got[0])
}

func TestWithTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "custom", ttl: time.Minute, want: time.Minute},
		{name: "zero keeps default", ttl: 0, want: DefaultTTL},
		{name: "negative keeps default", ttl: -time.Second, want: DefaultTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(nil, WithTTL(tt.ttl)).TTL())
		})
	}
}

type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, string) (Entry, bool, error) { return Entry{}, false, errBroken }
func (brokenStore) Put(context.Context, Entry) error                 { return errBroken }

func TestCache_StoreErrors(t *testing.T) {
	ctx := context.Background()
	c := New(brokenStore{})

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "read errors are treated as a miss")

	err := c.Put(ctx, "k", []byte("v"))
	assert.ErrorIs(t, err, errBroken)

	_, err = c.Clear(ctx, false)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = c.Entries(ctx)
	assert.ErrorIs(t, err, ErrUnsupported)

	s, err := c.Stats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, -1, s.Entries)
	assert.Equal(t, int64(1), s.Misses)
}

func TestCache_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	c := New(NewMemoryStore(), WithClock(clk.Now))

	require.NoError(t, c.Put(ctx, "old", []byte("1")))
	clk.Advance(DefaultTTL)
	require.NoError(t, c.Put(ctx, "new", []byte("2")))

	c.Get(ctx, "new")     // hit
	c.Get(ctx, "old")     // expired
	c.Get(ctx, "missing") // miss

	s, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, s.Store)
	assert.Equal(t, 2, s.Entries)
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(2), s.Misses)

	n, err := c.Clear(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := c.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Key)

	n, err = c.Clear(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err = c.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.Get(ctx, "shared"); !ok {
				_ = c.Put(ctx, "shared", []byte("v"))
			}
		}()
	}
	wg.Wait()

	got, ok := c.Get(ctx, "shared")
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))
}
