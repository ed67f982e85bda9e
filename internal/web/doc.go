// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package web serves the search, gallery and recipe pages over HTTP. Every
// request runs its own workflow against one shared client and cache.
package web
