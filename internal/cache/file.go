// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"
)

// record is the on-disk (and in-bucket) form of an Entry.
type record struct {
	Key       string    `json:"key"`
	FetchedAt time.Time `json:"fetched_at"`
	Value     []byte    `json:"value"`
}

func encodeEntry(e Entry) ([]byte, error) {
	return json.Marshal(record{Key: e.Key, FetchedAt: e.FetchedAt, Value: e.Value})
}

func decodeEntry(b []byte) (Entry, error) {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return Entry{}, fmt.Errorf("corrupt cache record: %w", err)
	}
	return Entry{Key: r.Key, Value: r.Value, FetchedAt: r.FetchedAt}, nil
}

// Dir resolves the base cache directory.
// Precedence:
//  1. MEALCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/mealctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("MEALCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "mealctl"), true
	}
	return "", false
}

// Enabled returns true unless MEALCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("MEALCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// FileStore keeps one file per entry in a directory. The filename is the MD5
// of the key so arbitrary URLs map to safe names.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file cache store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns where key is, or would be, stored.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, encodeKey(key))
}

func (f *FileStore) Get(_ context.Context, key string) (Entry, bool, error) {
	b, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	e, err := decodeEntry(b)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Put writes through a temp file and rename so readers never see a partial
// record.
func (f *FileStore) Put(_ context.Context, entry Entry) error {
	b, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".put-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path(entry.Key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List reads every record in the directory. Unreadable files are skipped
// with a warning.
func (f *FileStore) List(_ context.Context) ([]Entry, error) {
	dirents, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var out []Entry
	for _, d := range dirents {
		if d.IsDir() || len(d.Name()) != md5.Size*2 {
			continue
		}
		p := filepath.Join(f.dir, d.Name())
		b, err := os.ReadFile(p)
		if err != nil {
			log.WithError(err).Warnf("failed to read cache file %s", p)
			continue
		}
		e, err := decodeEntry(b)
		if err != nil {
			log.WithError(err).Warnf("skipping cache file %s", p)
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
