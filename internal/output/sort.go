// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec splits "a,-b,!c". A leading - sorts descending, a leading !
// compares strings by byte instead of collation. Both may be combined.
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, part := range strings.Split(spec, ",") {
		k := sortKey{field: strings.TrimSpace(part)}
	prefix:
		for len(k.field) > 0 {
			switch k.field[0] {
			case '-':
				k.descending = true
			case '!':
				k.caseSensitive = true
			default:
				break prefix
			}
			k.field = k.field[1:]
		}
		if k.field != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// SortDataset orders rows in place by spec. Numbers compare numerically,
// strings by English collation, missing values first. Rows that tie on every
// key keep their order.
func SortDataset(rows []map[string]interface{}, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(col, rows[i][k.field], rows[j][k.field], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(col *collate.Collator, a, b interface{}, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}

	sa, sb := InterfaceToString(a), InterfaceToString(b)
	if caseSensitive {
		return strings.Compare(sa, sb)
	}
	return col.CompareString(sa, sb)
}
