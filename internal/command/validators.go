// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/browse"
	"github.com/staranto/mealctl/internal/cache"
	"github.com/staranto/mealctl/internal/output"
)

// GlobalFlagsValidator checks combinations the per-flag validators can't see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("schema") && c.String("output") == output.FormatRaw {
		return errors.New("--schema and --output=raw are mutually exclusive")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, []string{output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML})
}

func CacheStoreValidator(value any) error {
	return oneOf(value, cache.StoreNames)
}

func SortFieldValidator(value any) error {
	_, err := browse.ParseSortField(value.(string))
	return err
}

func SortOrderValidator(value any) error {
	_, err := browse.ParseSortOrder(value.(string))
	return err
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
