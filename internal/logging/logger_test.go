// Coursefinder - Course Catalog Filtering and Similar Course Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursefinder

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("DefaultConfig().Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "json" {
		t.Errorf("DefaultConfig().Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.Caller {
		t.Error("DefaultConfig().Caller = true, want false")
	}
	if !cfg.Timestamp {
		t.Error("DefaultConfig().Timestamp = false, want true")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Tests below reconfigure the global logger and must not run in parallel.

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("catalog", "courses.csv").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("output = %s, want it to contain %q", output, "test message")
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("output = %s, want level field", output)
	}
	if !strings.Contains(output, `"catalog":"courses.csv"`) {
		t.Errorf("output = %s, want catalog field", output)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	defer Init(DefaultConfig())

	Info().Msg("hidden")
	Warn().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info message logged at warn level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("warn message missing: %s", output)
	}
}

func TestCtx_AddsRequestAndSessionIDs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")
	Ctx(ctx).Info().Msg("scoped")

	output := buf.String()
	if !strings.Contains(output, `"request_id":"req-1"`) {
		t.Errorf("output = %s, want request_id", output)
	}
	if !strings.Contains(output, `"session_id":"sess-1"`) {
		t.Errorf("output = %s, want session_id", output)
	}
}

func TestCtx_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	ctx := ContextWithLogger(context.Background(), logger)
	Ctx(ctx).Warn().Msg("from context logger")

	if !strings.Contains(buf.String(), "from context logger") {
		t.Errorf("context logger not used: %q", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}

	ctx := ContextWithRequestID(context.Background(), GenerateRequestID())
	id := RequestIDFromContext(ctx)
	if len(id) != 36 {
		t.Errorf("generated request ID %q has length %d, want 36", id, len(id))
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	l := WithComponent("finder")
	l.Info().Msg("component message")

	if !strings.Contains(buf.String(), `"component":"finder"`) {
		t.Errorf("output = %s, want component field", buf.String())
	}
}

// --- Test: SlogHandler ---

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	slogger.With("service", "http-server").WithGroup("event").Warn("service restarted", "attempt", 2)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"http-server"`,
		`"event.attempt":2`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output = %s, want it to contain %s", output, want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	handler := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(info) = true for warn logger, want false")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(error) = false for warn logger, want true")
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler()
	if got := h.WithGroup(""); got != h {
		t.Error("WithGroup(\"\") returned a new handler, want the receiver")
	}
}
