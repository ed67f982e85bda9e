// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// Tag is a jsonapi struct tag surfaced by --schema.
type Tag struct {
	Kind     string
	Name     string
	Encoding string
}

// NewTag parses a jsonapi tag value. Only attr tags are kept; h prefixes the
// name for nested attributes.
func NewTag(h string, s string) Tag {
	tag := Tag{}

	parts := strings.Split(s, ",")
	if parts[0] != "attr" {
		return tag
	}
	tag.Kind = parts[0]

	if len(parts) > 1 {
		tag.Name = parts[1]
		if h != "" {
			tag.Name = h + "." + parts[1]
		}
	}
	if len(parts) > 2 {
		tag.Encoding = parts[2]
	}

	return tag
}

func (t Tag) Print() string {
	return t.Name
}

const maxSchemaDepth = 1

// DumpSchemaWalker collects attr tags from typ, descending one level into
// struct, pointer and slice-of-struct fields.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("jsonapi")
		if !ok {
			continue
		}
		tag := NewTag(holder, tagValue)
		if tag.Kind != "attr" {
			continue
		}
		tags = append(tags, tag)

		if depth >= maxSchemaDepth {
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			tags = append(tags, DumpSchemaWalker(tag.Name, ft, depth+1)...)
		} else {
			log.Debugf("leaf field %s (%s)", field.Name, ft.Kind())
		}
	}

	return tags
}

// DumpSchema lists the attrs of typ available to --attrs.
func DumpSchema(w io.Writer, prefix string, typ reflect.Type) {
	tags := DumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found for type %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Resource attributes available to --attrs. The resource id is .id and the
full document is available with --output=raw.`)
}

// DumpExamples renders command usage examples as a two column table.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}

	rows := make([][]string, 0, len(examples))
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}
