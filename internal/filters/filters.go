// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/mealctl/internal/attrs"
)

// DelimEnv overrides the "," separating filter expressions.
const DelimEnv = "MEALCTL_FILTER_DELIM"

// An expression is key, operator, target. Operators are = ~ ^ < > @ and /,
// each of which may be negated with a leading !.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses spec. Malformed expressions are logged and dropped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter
	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnv); ok && d != "" {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil || strings.TrimSpace(parts[1]) == "" {
			log.WithField("filter", expr).Error("invalid filter")
			continue
		}

		op := parts[2]
		negate := strings.HasPrefix(op, "!")
		filters = append(filters, Filter{
			Key:     strings.TrimSpace(parts[1]),
			Negate:  negate,
			Operand: strings.TrimPrefix(op, "!"),
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the resources in candidates matching every filter and
// projects each onto attrs. Values are left raw; transforms happen at output.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var rows []map[string]interface{}
	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, al, filters) {
			continue
		}

		row := make(map[string]interface{}, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = candidate.Get(attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// applyFilters reports whether candidate passes all filters. A filter whose
// key names no attr is reported and ignored.
func applyFilters(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := ""
		for _, attr := range al {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}
		if key == "" {
			log.WithField("key", filter.Key).Warn("filter key not found")
			fmt.Fprintf(os.Stderr, "warning: filter key not found: %s\n", filter.Key)
			continue
		}

		value := candidate.Get(key).Value()
		if value == nil {
			return false
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			ok = checkNumericOperand(v, filter)
		default:
			ok = filter.Operand == "@" && checkContainsOperand(v, filter)
		}
		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand tests membership for lists and objects. A list of
// objects, such as ingredients, matches when any member carries the target as
// one of its string values, compared case-insensitively.
func checkContainsOperand(value interface{}, filter Filter) bool {
	found := false
	switch val := value.(type) {
	case []interface{}:
		for _, item := range val {
			if containsValue(item, filter.Target) {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = val[filter.Target]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

func containsValue(item interface{}, target string) bool {
	switch v := item.(type) {
	case string:
		return strings.EqualFold(v, target)
	case map[string]interface{}:
		for _, field := range v {
			if s, ok := field.(string); ok && strings.EqualFold(s, target) {
				return true
			}
		}
	}
	return false
}

// checkNumericOperand supports =, < and >.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Target), 64)
	if err != nil {
		log.WithField("target", filter.Target).Error("invalid numeric target")
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) != filter.Negate
	case ">":
		return (value > tgt) != filter.Negate
	case "<":
		return (value < tgt) != filter.Negate
	default:
		log.WithField("operand", filter.Operand).Error("unsupported numeric operand")
		return false
	}
}

func checkStringOperand(value string, filter Filter) bool {
	var match bool
	switch filter.Operand {
	case "=":
		match = value == filter.Target
	case "~":
		match = strings.EqualFold(value, filter.Target)
	case "^":
		match = strings.HasPrefix(value, filter.Target)
	case ">":
		match = value > filter.Target
	case "<":
		match = value < filter.Target
	case "@":
		match = strings.Contains(value, filter.Target)
	case "/":
		re, err := regexp.Compile(filter.Target)
		if err != nil {
			log.WithField("regex", filter.Target).Error("invalid regex")
			return false
		}
		match = re.MatchString(value)
	default:
		log.WithField("operand", filter.Operand).Error("unsupported filtering operand")
		return false
	}
	return match != filter.Negate
}
