// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package mealdb

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error the client returns is an *UpstreamError whose
// Kind is one of these.
var (
	ErrTransport = errors.New("recipe service unreachable")
	ErrMalformed = errors.New("malformed response from recipe service")
	ErrNotFound  = errors.New("no matching recipe")
)

// UpstreamError describes a failed call against the recipe API.
type UpstreamError struct {
	// Op is the client operation, e.g. "search".
	Op string
	// URL is the request URL, which is also the cache key.
	URL string
	// Kind is ErrTransport, ErrMalformed or ErrNotFound.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Reason is a short label for the failure kind of err, or "" when err did not
// come from the client.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return ""
	}
}
