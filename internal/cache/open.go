// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	myaws "github.com/staranto/mealctl/internal/aws"
)

// Store names accepted by Open.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreS3     = "s3"
)

// StoreNames lists the values Open understands.
var StoreNames = []string{StoreMemory, StoreFile, StoreSQLite, StoreS3, StoreNone}

// Settings selects and configures a store.
type Settings struct {
	Store string
	TTL   time.Duration

	// file
	Dir string
	// sqlite
	DBPath string
	// s3
	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string
}

// Open builds the Cache described by s. It returns nil, nil when caching is
// turned off, either by Store "none" or MEALCTL_CACHE.
func Open(ctx context.Context, s Settings) (*Cache, error) {
	if s.Store == StoreNone || !Enabled() {
		log.Debug("response cache disabled")
		return nil, nil
	}

	var (
		store Store
		err   error
	)

	switch s.Store {
	case "", StoreMemory:
		store = NewMemoryStore()
	case StoreFile:
		dir := s.Dir
		if dir == "" {
			base, ok := Dir()
			if !ok {
				return nil, fmt.Errorf("no cache directory available for the %s store", StoreFile)
			}
			dir = filepath.Join(base, "responses")
		}
		store, err = NewFileStore(dir)
	case StoreSQLite:
		p := s.DBPath
		if p == "" {
			base, ok := Dir()
			if !ok {
				return nil, fmt.Errorf("no cache directory available for the %s store", StoreSQLite)
			}
			if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
			p = filepath.Join(base, "cache.db")
		}
		store, err = NewSQLiteStore(p)
	case StoreS3:
		store, err = openS3(ctx, s)
	default:
		return nil, fmt.Errorf("unknown cache store %q, must be one of %v", s.Store, StoreNames)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("response cache: store=%s ttl=%s", StoreName(store), s.TTL)
	return New(store, WithTTL(s.TTL)), nil
}

func openS3(ctx context.Context, s Settings) (*S3Store, error) {
	var opts []myaws.Option
	if s.Profile != "" {
		opts = append(opts, myaws.WithProfile(s.Profile))
	}
	if s.Region != "" {
		opts = append(opts, myaws.WithRegion(s.Region))
	}

	cfg, err := myaws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := myaws.NewS3(cfg, myaws.WithS3BaseEndpoint(s.Endpoint))
	return NewS3Store(client, s.Bucket, s.Prefix)
}

// Close releases the store's resources, if it holds any.
func (c *Cache) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
