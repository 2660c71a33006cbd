package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "storage",
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("Opened database", "path", "/tmp/test.db")

	out := buf.String()
	if !strings.Contains(out, "component=storage") {
		t.Errorf("log line missing component attribute: %s", out)
	}
	if !strings.Contains(out, "path=/tmp/test.db") {
		t.Errorf("log line missing caller attribute: %s", out)
	}
}

func TestWithComponentReplacesName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "app",
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	sub := logger.WithComponent("sync")
	if sub.Component() != "sync" {
		t.Errorf("Component() = %q, want sync", sub.Component())
	}

	sub.Info("Batch committed")
	if !strings.Contains(buf.String(), "component=sync") {
		t.Errorf("log line missing sub component: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
