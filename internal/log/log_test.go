// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_HandleLog(t *testing.T) {
	ts := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := []struct {
		name   string
		entry  *log.Entry
		expect string
	}{
		{
			name: "plain message",
			entry: &log.Entry{
				Level:     log.WarnLevel,
				Message:   "upstream failed",
				Timestamp: ts,
			},
			expect: "2025-03-04 05:06:07 W upstream failed\n",
		},
		{
			name: "sorted fields",
			entry: &log.Entry{
				Level:     log.DebugLevel,
				Message:   "cache hit",
				Timestamp: ts,
				Fields:    log.Fields{"key": "categories", "age": "1s"},
			},
			expect: "2025-03-04 05:06:07 D cache hit age=1s key=categories\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &CustomHandler{Writer: &buf}
			assert.NoError(t, h.HandleLog(tt.entry))
			assert.Equal(t, tt.expect, buf.String())
		})
	}
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level log.Level
	}{
		{name: "default", env: "", level: log.ErrorLevel},
		{name: "debug", env: "debug", level: log.DebugLevel},
		{name: "bogus falls back", env: "chatty", level: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MEALCTL_LOG", tt.env)
			InitLogger()
			l, ok := log.Log.(*log.Logger)
			assert.True(t, ok)
			assert.Equal(t, tt.level, l.Level)
		})
	}
}
