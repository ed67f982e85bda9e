// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package tui is the interactive recipe search screen. Keystrokes are
// debounced before a search is issued and only the newest search may update
// the result table.
package tui
