// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/mealdb"
	"github.com/staranto/mealctl/internal/meta"
)

// ErrCacheDisabled is returned by cache administration when no store is
// configured.
var ErrCacheDisabled = errors.New("response caching is disabled")

// CacheEntry is the listing view of a stored response.
type CacheEntry struct {
	ID        string `jsonapi:"primary,cache-entries"`
	Key       string `jsonapi:"attr,key"`
	FetchedAt string `jsonapi:"attr,fetched-at"`
	Age       string `jsonapi:"attr,age"`
	Size      string `jsonapi:"attr,size"`
	Bytes     int    `jsonapi:"attr,bytes"`
	Expired   bool   `jsonapi:"attr,expired"`
}

// CacheStats summarizes a store.
type CacheStats struct {
	Store   string `jsonapi:"primary,cache-stats"`
	TTL     string `jsonapi:"attr,ttl"`
	Entries int    `jsonapi:"attr,entries"`
	Expired int    `jsonapi:"attr,expired"`
	Size    string `jsonapi:"attr,size"`
}

func requireCache(client *mealdb.Client) (*cache.Cache, error) {
	if rc := client.Cache(); rc != nil {
		return rc, nil
	}
	return nil, ErrCacheDisabled
}

// CacheLsCommandAction lists stored responses, newest first.
func CacheLsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*CacheEntry]{
		CommandName:  "cache",
		SchemaType:   reflect.TypeOf(CacheEntry{}),
		DefaultAttrs: []string{".id", "age", "size", "expired", "key"},
		FetchFn: func(ctx context.Context, _ *cli.Command, client *mealdb.Client) ([]*CacheEntry, error) {
			rc, err := requireCache(client)
			if err != nil {
				return nil, err
			}
			entries, err := rc.Entries(ctx)
			if err != nil {
				return nil, err
			}
			return cacheEntries(rc, entries), nil
		},
	}
	return runner.Run(ctx, cmd)
}

func cacheEntries(rc *cache.Cache, entries []cache.Entry) []*CacheEntry {
	entries = slices.Clone(entries)
	slices.SortStableFunc(entries, func(a, b cache.Entry) int {
		return b.FetchedAt.Compare(a.FetchedAt)
	})

	out := make([]*CacheEntry, 0, len(entries))
	for i, e := range entries {
		out = append(out, &CacheEntry{
			ID:        strconv.Itoa(i + 1),
			Key:       e.Key,
			FetchedAt: e.FetchedAt.UTC().Format(time.RFC3339),
			Age:       humanize.Time(e.FetchedAt),
			Size:      humanize.Bytes(uint64(len(e.Value))),
			Bytes:     len(e.Value),
			Expired:   rc.Expired(e),
		})
	}
	return out
}

// CacheStatsCommandAction reports the store, TTL and size.
func CacheStatsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner[*CacheStats]{
		CommandName:  "cache",
		SchemaType:   reflect.TypeOf(CacheStats{}),
		DefaultAttrs: []string{".id:store", "ttl", "entries", "expired", "size"},
		FetchFn: func(ctx context.Context, _ *cli.Command, client *mealdb.Client) ([]*CacheStats, error) {
			rc, err := requireCache(client)
			if err != nil {
				return nil, err
			}
			st, err := rc.Stats(ctx)
			if err != nil && !errors.Is(err, cache.ErrUnsupported) {
				return nil, err
			}

			out := &CacheStats{Store: st.Store, TTL: st.TTL.String(), Entries: st.Entries}
			if st.Entries >= 0 {
				entries, err := rc.Entries(ctx)
				if err != nil {
					return nil, err
				}
				var total uint64
				for _, e := range entries {
					total += uint64(len(e.Value))
					if rc.Expired(e) {
						out.Expired++
					}
				}
				out.Size = humanize.Bytes(total)
			}
			return []*CacheStats{out}, nil
		},
	}
	return runner.Run(ctx, cmd)
}

// CacheClearCommandAction removes stored responses, or only stale ones with
// --expired.
func CacheClearCommandAction(ctx context.Context, cmd *cli.Command) error {
	client, release, err := NewService(ctx, cmd)
	if err != nil {
		return err
	}
	defer release()

	rc, err := requireCache(client)
	if err != nil {
		return err
	}

	n, err := rc.Clear(ctx, cmd.Bool("expired"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(Writer(cmd), "removed %d cache %s\n", n, plural(n, "entry", "entries"))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// CacheCommandBuilder constructs the "cache" command and its subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	clearCmd := &cli.Command{
		Name:      "clear",
		Usage:     "remove cached responses",
		UsageText: "mealctl cache clear [--expired]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "expired",
				Usage:       "only remove entries older than the ttl",
				HideDefault: true,
			},
		}, NewServiceFlags("cache", cache.StoreFile)...),
		Action: CacheClearCommandAction,
	}

	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect and clear the response cache",
		UsageText: "mealctl cache stats|ls|clear [options]",
		Commands: []*cli.Command{
			(&QueryCommandBuilder{
				Name:   "stats",
				Usage:  "show cache store, ttl and size",
				Action: CacheStatsCommandAction,
				Meta:   meta,
			}).Build(),
			(&QueryCommandBuilder{
				Name:   "ls",
				Usage:  "list cached responses",
				Action: CacheLsCommandAction,
				Meta:   meta,
			}).Build(),
			clearCmd,
		},
	}
}
