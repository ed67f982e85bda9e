// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/mealctl/internal/command"
)

// Doc generator:
// - Renders docs/commands/<cmd>.md from the live command definitions
// - Generates:
//   - docs/man/share/man1/mealctl-<cmd>.1 via md2man (convert full markdown)
//   - docs/tldr/mealctl-<cmd>.md using the Quick examples block and short description

// quickExamples are appended to the generated command docs.
var quickExamples = map[string][]example{
	"sq": {
		{Desc: "Search meals by name", Cmd: "mealctl sq chicken"},
		{Desc: "Sort by area, descending, as JSON", Cmd: "mealctl sq --sort -area -o json beef"},
	},
	"gq": {
		{Desc: "List the default gallery", Cmd: "mealctl gq"},
		{Desc: "Union of a category and an area", Cmd: "mealctl gq -C seafood -A thai"},
	},
	"dq": {
		{Desc: "Show a recipe", Cmd: "mealctl dq 52772"},
		{Desc: "Show the next recipe in its category and copy the ingredients", Cmd: "mealctl dq --next --copy 52772"},
	},
	"cq":         {{Desc: "List categories", Cmd: "mealctl cq"}},
	"aq":         {{Desc: "List areas as YAML", Cmd: "mealctl aq -o yaml"}},
	"ui":         {{Desc: "Search interactively", Cmd: "mealctl ui"}},
	"serve":      {{Desc: "Serve the pages on port 9000", Cmd: "mealctl serve --listen :9000"}},
	"cache":      {{Desc: "Drop stale responses", Cmd: "mealctl cache clear --expired"}},
	"completion": {{Desc: "Load bash completion", Cmd: "source <(mealctl completion bash)"}},
}

func main() {
	var (
		repoRoot           string
		commandsDir        string
		manOutDir          string
		tldrOutDir         string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir = filepath.Join(repoRoot, "docs", "commands")
	manOutDir = filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir = filepath.Join(repoRoot, "docs", "tldr")

	for _, d := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			fatalf("creating output dir %s: %v", d, err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"mealctl"})
	if err != nil {
		fatalf("building commands: %v", err)
	}

	var processed int
	for _, c := range app.Commands {
		raw := []byte(commandMarkdown(c))
		mdPath := filepath.Join(commandsDir, c.Name+".md")
		if err := writeFileIfChanged(mdPath, raw, writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", c.Name, err)
		}

		// Generate man page from full markdown
		manBytes := md2man.Render(raw)
		manPath := filepath.Join(manOutDir, fmt.Sprintf("mealctl-%s.1", c.Name))
		if err := writeFileIfChanged(manPath, manBytes, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", c.Name, err)
		}

		// Generate TLDR page from short description + quick examples
		title, shortDesc := extractTitleAndShortDesc(string(raw))
		examples := extractQuickExamples(string(raw))
		tldr := buildTLDR(c.Name, title, shortDesc, examples)
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("mealctl-%s.md", c.Name))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", c.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

// commandMarkdown renders the canonical doc for c. Man pages and TLDR pages
// are derived from it.
func commandMarkdown(c *cli.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# mealctl-%s\n\n", c.Name)
	b.WriteString("## Short description\n\n")
	b.WriteString(upperFirst(c.Usage) + ".\n\n")

	if c.UsageText != "" {
		b.WriteString("## Synopsis\n\n```\n" + c.UsageText + "\n```\n\n")
	}

	if len(c.Commands) > 0 {
		b.WriteString("## Subcommands\n\n")
		for _, sub := range c.Commands {
			fmt.Fprintf(&b, "- `%s` %s\n", sub.Name, sub.Usage)
		}
		b.WriteString("\n")
	}

	flags := c.Flags
	for _, sub := range c.Commands {
		flags = append(flags, sub.Flags...)
	}
	if len(flags) > 0 {
		b.WriteString("## Flags\n\n")
		seen := map[string]bool{}
		for _, f := range flags {
			names := f.Names()
			if seen[names[0]] {
				continue
			}
			seen[names[0]] = true
			usage := ""
			if du, ok := f.(cli.DocGenerationFlag); ok {
				usage = du.GetUsage()
			}
			fmt.Fprintf(&b, "- `%s` %s\n", flagNames(names), usage)
		}
		b.WriteString("\n")
	}

	if exs := quickExamples[c.Name]; len(exs) > 0 {
		b.WriteString("## Quick examples\n\n```\n")
		for _, ex := range exs {
			b.WriteString("# " + ex.Desc + "\n" + ex.Cmd + "\n")
		}
		b.WriteString("```\n")
	}
	return b.String()
}

func flagNames(names []string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) == 1 {
			out = append(out, "-"+n)
		} else {
			out = append(out, "--"+n)
		}
	}
	return strings.Join(out, ", ")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

var (
	h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	// sectionRe = regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z\s]+)\n+`)
)

func extractTitleAndShortDesc(md string) (title, short string) {
	// Title from first H1
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}
	// Find "Short description" section and take the next non-empty paragraph
	idx := strings.Index(strings.ToLower(md), "short description")
	if idx >= 0 {
		rest := md[idx:]
		// Skip the header line
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[nl+1:]
		}
		// Take the next non-empty line(s) until blank
		lines := strings.Split(rest, "\n")
		var b strings.Builder
		for _, ln := range lines {
			if strings.TrimSpace(ln) == "" {
				if b.Len() > 0 { // stop after first paragraph
					break
				}
				continue
			}
			// stop if we hit another section header
			if strings.TrimSpace(ln) == "Flags and related docs" || strings.HasPrefix(ln, "#") || strings.HasSuffix(ln, ":") {
				break
			}
			b.WriteString(strings.TrimSpace(ln))
			b.WriteString(" ")
		}
		short = strings.TrimSpace(b.String())
	}
	if short == "" {
		// Fallback to a generic sentence using title
		if title != "" {
			short = fmt.Sprintf("%s.", title)
		}
	}
	return
}

type example struct {
	Desc string
	Cmd  string
}

func extractQuickExamples(md string) []example {
	// Find the "Quick examples" section; capture the first fenced code block after it
	lower := strings.ToLower(md)
	idx := strings.Index(lower, "quick examples")
	if idx < 0 {
		return nil
	}
	rest := md[idx:]
	// Find first code fence after the header
	fence := "```"
	fenceStart := strings.Index(rest, fence)
	if fenceStart < 0 {
		return nil
	}
	rest = rest[fenceStart+len(fence):]
	fenceEnd := strings.Index(rest, fence)
	if fenceEnd < 0 {
		return nil
	}
	code := rest[:fenceEnd]
	lines := strings.Split(code, "\n")
	var exs []example
	var cur example
	for _, ln := range lines {
		s := strings.TrimRight(ln, "\r")
		if strings.TrimSpace(s) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(s), "# ") || strings.HasPrefix(strings.TrimSpace(s), "#\t") || strings.HasPrefix(strings.TrimSpace(s), "#") {
			// Start a new description; if cur has both, push and reset
			if cur.Desc != "" && cur.Cmd != "" {
				exs = append(exs, cur)
				cur = example{}
			}
			cur.Desc = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "# "), "#"))
			continue
		}
		// Treat as command line
		if cur.Cmd == "" {
			cur.Cmd = strings.TrimSpace(s)
			if cur.Desc == "" {
				// Provide a generic description if missing
				cur.Desc = "Example"
			}
			exs = append(exs, cur)
			cur = example{}
		}
	}
	// If leftover cur is complete, append
	if cur.Desc != "" && cur.Cmd != "" {
		exs = append(exs, cur)
	}
	return exs
}

func buildTLDR(cmd, title, short string, exs []example) string {
	var b strings.Builder
	// Header
	b.WriteString("# mealctl-" + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + short + "\n")
	} else if title != "" {
		b.WriteString("> " + title + "\n")
	} else {
		b.WriteString("> mealctl " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/mealctl.\n\n")

	if len(exs) == 0 {
		// Fallback examples
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`mealctl " + cmd + " --help`\n")
		b.WriteString("\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		// Ensure backticks and placeholder style
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	// Replace angle-bracket placeholders with {{...}} if present
	// For now, just compress runs of whitespace
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
