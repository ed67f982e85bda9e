// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/apex/log"
)

// DefaultTTL is how long a stored response is served before it's refetched.
const DefaultTTL = 5 * time.Minute

// ErrUnsupported is returned by administrative operations the configured
// store can't perform.
var ErrUnsupported = errors.New("operation not supported by cache store")

// Entry is a single stored response.
type Entry struct {
	// Key is the clear-text request signature, the full request URL.
	Key string
	// Value is the raw response payload.
	Value []byte
	// FetchedAt is when Value was put.
	FetchedAt time.Time
}

// Store persists entries. Implementations never apply the TTL themselves and
// must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, entry Entry) error
}

// Lister is implemented by stores that can enumerate their entries.
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
}

// Deleter is implemented by stores that can remove an entry.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Stats reports cache activity for this process and the store size, when the
// store can be listed. Entries is -1 otherwise.
type Stats struct {
	Store   string
	TTL     time.Duration
	Entries int
	Hits    int64
	Misses  int64
}

// Cache is a read-through TTL cache. The zero value is not usable; use New.
type Cache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

// Option customizes a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a Cache over store. A nil store gets a fresh MemoryStore.
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cache{
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Store returns the underlying store.
func (c *Cache) Store() Store {
	return c.store
}

// Get returns the value for key if it was put less than TTL ago. Expired
// entries are left in place; the next Put overwrites them.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
		c.misses.Add(1)
		return nil, false
	}
	if !ok {
		log.WithField("key", key).Debug("cache miss")
		c.misses.Add(1)
		return nil, false
	}

	if c.expired(entry) {
		log.WithField("key", key).Debug("cache expired")
		c.misses.Add(1)
		return nil, false
	}

	log.WithField("key", key).Debug("cache hit")
	c.hits.Add(1)
	return entry.Value, true
}

// Put stores value under key stamped with the current time, replacing any
// previous value.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	entry := Entry{
		Key:       key,
		Value:     value,
		FetchedAt: c.now(),
	}
	if err := c.store.Put(ctx, entry); err != nil {
		return fmt.Errorf("cache put %s: %w", key, err)
	}
	return nil
}

// Expired reports whether entry is past the TTL at the current time.
func (c *Cache) Expired(entry Entry) bool {
	return c.expired(entry)
}

func (c *Cache) expired(entry Entry) bool {
	return c.now().Sub(entry.FetchedAt) >= c.ttl
}

// Entries lists every stored entry, expired ones included.
func (c *Cache) Entries(ctx context.Context) ([]Entry, error) {
	lister, ok := c.store.(Lister)
	if !ok {
		return nil, ErrUnsupported
	}
	return lister.List(ctx)
}

// Clear removes stored entries and returns how many were removed. With
// expiredOnly, live entries are kept.
func (c *Cache) Clear(ctx context.Context, expiredOnly bool) (int, error) {
	lister, ok := c.store.(Lister)
	if !ok {
		return 0, ErrUnsupported
	}
	deleter, ok := c.store.(Deleter)
	if !ok {
		return 0, ErrUnsupported
	}

	entries, err := lister.List(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if expiredOnly && !c.expired(e) {
			continue
		}
		if err := deleter.Delete(ctx, e.Key); err != nil {
			return removed, fmt.Errorf("cache delete %s: %w", e.Key, err)
		}
		removed++
	}
	return removed, nil
}

// Stats returns hit/miss counters and the entry count.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	s := Stats{
		Store:   StoreName(c.store),
		TTL:     c.ttl,
		Entries: -1,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}

	if lister, ok := c.store.(Lister); ok {
		entries, err := lister.List(ctx)
		if err != nil {
			return s, err
		}
		s.Entries = len(entries)
	}
	return s, nil
}

// StoreName returns a short label for the store type.
func StoreName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return StoreMemory
	case *FileStore:
		return StoreFile
	case *SQLiteStore:
		return StoreSQLite
	case *S3Store:
		return StoreS3
	default:
		return fmt.Sprintf("%T", s)
	}
}
