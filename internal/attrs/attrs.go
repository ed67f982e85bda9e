// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/mealctl/internal/config"
)

// Attr is one column of output. Key addresses a value in a JSON:API resource
// object, either under .attributes or, with a leading dot, from the root.
type Attr struct {
	// Key is the gjson path into the resource object.
	Key string
	// Include is false for attrs that only exist to be filtered or sorted on.
	Include bool
	// OutputKey names the column in text output and the key elsewhere.
	OutputKey string
	// TransformSpec holds case (l/u), time (t) and length (N or -N) flags.
	TransformSpec string
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Transform applies TransformSpec to value. Only strings are transformed,
// everything else is returned untouched.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = a.localTime(result)
	}

	// The last case flag wins, so '*::U,name::l' lowers name.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	switch {
	case lastL > lastU:
		result = strings.ToLower(result)
	case lastU > lastL:
		result = strings.ToUpper(result)
	}

	// Likewise the last length wins. Negative lengths keep both ends.
	if match := lengthRe.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if len(result) > abs {
			if l < 0 {
				keep := abs/2 - 1
				result = result[:keep] + ".." + result[len(result)-keep:]
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

// localTime renders an RFC3339 timestamp in the configured zone. Without a
// zone the value passes through.
func (a *Attr) localTime(s string) string {
	tz := timezone()
	if tz == "" {
		return s
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.WithError(err).WithField("tz", tz).Warn("unknown timezone")
		return s
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		log.WithField("value", s).Debug("not a timestamp")
		return s
	}
	return t.In(loc).Format("2006-01-02T15:04:05MST")
}

// timezone looks at MEALCTL_TZ, the config file and TZ, in that order.
func timezone() string {
	if tz := os.Getenv("MEALCTL_TZ"); tz != "" {
		return tz
	}
	if tz, err := config.GetString("timezone"); err == nil && tz != "" {
		return tz
	}
	return os.Getenv("TZ")
}

type AttrList []Attr

// String renders the list back into --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a comma separated --attrs value. Each spec is
// key[:output[:transform]]; a leading ! hides the attr and "*" carries a
// transform for every attr. Specs naming an existing attr update it in place.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attr in %q", value)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = attr.Key
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		if strings.HasPrefix(attr.Key, ".") {
			attr.Key = attr.Key[1:]
		} else if attr.Key != "*" {
			attr.Key = "attributes." + attr.Key
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prefixes the "*" transform, if any, onto every
// attr. Only the first "*" is honored.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}
	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

// Visible returns the attrs that appear in output.
func (a AttrList) Visible() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}
