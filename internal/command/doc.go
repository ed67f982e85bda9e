// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for mealctl. The query
// commands (sq, gq, dq, cq, aq) share flags and output handling; ui, serve
// and cache front the interactive screen, the web pages and the response
// cache.
package command
