// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the read-through response cache used in front of the
// recipe API. A Cache applies a fixed TTL on read and delegates storage to a
// pluggable Store (memory, directory, SQLite or S3).
package cache
