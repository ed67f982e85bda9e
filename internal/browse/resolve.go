// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Resolve maps loosely typed input onto an entry of vocabulary. A case
// insensitive exact match wins, then the best fuzzy match.
func Resolve(input string, vocabulary []string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return "", fmt.Errorf("%w: empty name", ErrNoMatch)
	}
	for _, v := range vocabulary {
		if strings.EqualFold(v, in) {
			return v, nil
		}
	}

	matches := fuzzy.Find(in, vocabulary)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, input)
	}
	return matches[0].Str, nil
}

// ResolveAll resolves every input, failing on the first miss.
func ResolveAll(inputs, vocabulary []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		v, err := Resolve(in, vocabulary)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
