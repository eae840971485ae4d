package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLevels(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	lg := NewWriter(&buf, false)
	lg.Info("loaded %d movies", 3)
	lg.Warn("skipped %d rows", 1)
	lg.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"INFO  loaded 3 movies",
		"WARN  skipped 1 rows",
		"ERROR boom",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTimestampPrefix(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	NewWriter(&buf, true).Info("hello")
	if !strings.HasPrefix(buf.String(), "[") {
		t.Fatalf("expected timestamp prefix, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "INFO  hello") {
		t.Fatalf("missing message: %q", buf.String())
	}
}
