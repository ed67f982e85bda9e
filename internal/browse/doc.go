// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package browse holds the view workflows shared by the command line, the
// interactive screen and the web server: searching by name, the filterable
// gallery and the recipe detail with category navigation.
package browse
