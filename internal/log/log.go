// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// MEALCTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("MEALCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.ErrorLevel
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages and writes them to stderr, leaving
// stdout for command results.
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := e.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	level := strings.ToUpper(e.Level.String())

	fmt.Fprintf(w, "%s %.1s %s%s\n",
		timestamp.Format("2006-01-02 15:04:05"), level, e.Message, formatFields(e.Fields))
	return nil
}

// formatFields renders entry fields as sorted key=value pairs.
func formatFields(fields log.Fields) string {
	if len(fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
