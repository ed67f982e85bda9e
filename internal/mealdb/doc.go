// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package mealdb is the typed, cache-backed client for the TheMealDB recipe
// API.
package mealdb
