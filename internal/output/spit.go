// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/staranto/mealctl/internal/attrs"
	"github.com/staranto/mealctl/internal/config"
	"github.com/staranto/mealctl/internal/filters"
)

// Formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Options are the presentation flags shared by the query commands.
type Options struct {
	Output string
	Filter string
	Sort   string
	Titles bool
	Color  bool
	Local  bool
}

// OptionsFrom reads Options off a parsed command.
func OptionsFrom(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
		Local:  cmd.Bool("local"),
	}
}

// SliceDiceSpit filters, transforms, sorts and writes the resources found at
// parent in the raw document. Raw output bypasses all of that.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, parent string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Output == FormatRaw {
		_, err := w.Write(raw)
		return err
	}

	doc := gjson.ParseBytes(raw)
	if parent != "" {
		doc = doc.Get(parent)
	}

	rows := filters.FilterDataset(doc, al, opts.Filter)

	if opts.Local {
		for i := range al {
			al[i].TransformSpec += "t"
		}
	}

	for _, row := range rows {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)
	log.WithFields(log.Fields{"rows": len(rows), "output": opts.Output}).Debug("rendering")

	switch opts.Output {
	case FormatJSON:
		visible := project(rows, al)
		if visible == nil {
			visible = []map[string]interface{}{}
		}
		b, err := json.Marshal(visible)
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(project(rows, al))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		return TableWriter(rows, al, opts, w)
	}
}

// project drops hidden attrs from every row.
func project(rows []map[string]interface{}, al attrs.AttrList) []map[string]interface{} {
	visible := al.Visible()
	var out []map[string]interface{}
	for _, row := range rows {
		m := make(map[string]interface{}, len(visible))
		for _, attr := range visible {
			m[attr.OutputKey] = row[attr.OutputKey]
		}
		out = append(out, m)
	}
	return out
}

// TableWriter renders rows as an aligned, borderless table.
func TableWriter(rows []map[string]interface{}, al attrs.AttrList, opts Options, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	visible := al.Visible()
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(visible))
		for _, attr := range visible {
			line = append(line, InterfaceToString(row[attr.OutputKey], "-"))
		}
		cells = append(cells, line)
	}

	pad, _ := config.GetInt("padding", 2)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(visible))
		for _, attr := range visible {
			headers = append(headers, attr.OutputKey)
		}
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// getColors returns the configured title, even and odd row colors.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(key+".title", "#f6be00")
	even, _ = config.GetString(key+".even", "#ffffff")
	odd, _ = config.GetString(key+".odd", "#00c8f0")
	return
}

// InterfaceToString renders a cell value. Zero values become emptyValue
// (default ""). Floats are shown without decimals and composites as JSON.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(b)
	}
}
