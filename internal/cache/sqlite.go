// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key TEXT NOT NULL PRIMARY KEY,
	value BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// SQLiteStore keeps entries in a single table. fetched_at is Unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// sqlitePragmas let concurrent writers wait on the lock instead of failing
// with SQLITE_BUSY.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// One connection serializes writes within the process.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createEntriesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		value     []byte
		fetchedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, fetched_at FROM cache_entries WHERE key = ?`, key,
	).Scan(&value, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache get: %w", err)
	}
	return Entry{Key: key, Value: value, FetchedAt: time.Unix(0, fetchedAt)}, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (key, value, fetched_at) VALUES (?, ?, ?)`,
		entry.Key, entry.Value, entry.FetchedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, fetched_at FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e         Entry
			fetchedAt int64
		)
		if err := rows.Scan(&e.Key, &e.Value, &fetchedAt); err != nil {
			return nil, fmt.Errorf("cache list: %w", err)
		}
		e.FetchedAt = time.Unix(0, fetchedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
