package slogutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := LevelFromString(c.in); got != c.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	if LevelFromVerbosity(0, true) <= slog.LevelError {
		t.Error("quiet should suppress all standard levels")
	}
	if LevelFromVerbosity(0, false) != slog.LevelWarn {
		t.Error("default verbosity should be warn")
	}
	if LevelFromVerbosity(2, false) != slog.LevelDebug {
		t.Error("verbosity 2 should be debug")
	}
}

func TestNewLogger_Writes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, slog.LevelInfo)
	l.Info("extraction complete", "files", 3)
	if !strings.Contains(buf.String(), "extraction complete") {
		t.Errorf("log output missing message: %s", buf.String())
	}
	l.Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message logged at info level")
	}
}
