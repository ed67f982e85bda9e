// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// mealctl is a command line explorer for TheMealDB recipe API. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
