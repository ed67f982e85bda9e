// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output filters, transforms, sorts and renders result sets as text
// tables, JSON, YAML or the raw JSON:API document, and draws the recipe
// detail card.
package output
