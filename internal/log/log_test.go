package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charm "github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want charm.Level
	}{
		{"debug", charm.DebugLevel},
		{"info", charm.InfoLevel},
		{"warn", charm.WarnLevel},
		{"warning", charm.WarnLevel},
		{"error", charm.ErrorLevel},
		{"", charm.InfoLevel},
		{"loud", charm.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "debug", Format: "logfmt"})
	logger.Info("tasks fetched", "count", 3)

	out := buf.String()
	if !strings.Contains(out, "tasks fetched") || !strings.Contains(out, "count=3") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "error"})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at error level, got %q", buf.String())
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "milestone.log")
	logger, closer, err := Open(path, Options{Format: "logfmt"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	logger, closer, err := Open("", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if logger == nil || closer == nil {
		t.Fatal("expected non-nil logger and closer")
	}
	logger.Info("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
