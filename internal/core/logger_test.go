package core

import (
	"strings"
	"testing"
)

func TestWriterLoggerFormatsKeyValuePairs(t *testing.T) {
	var b strings.Builder
	log := NewWriterLogger(&b)

	log.Info("table generated", "table", "equipment", "rows", 40)
	log.Warn("upstream pool empty", "kind", "sensor")

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "INFO table generated table=equipment rows=40" {
		t.Fatalf("unexpected info line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "WARN upstream pool empty") {
		t.Fatalf("unexpected warn line: %q", lines[1])
	}
}

func TestWriterLoggerToleratesOddArguments(t *testing.T) {
	var b strings.Builder
	log := NewWriterLogger(&b)

	log.Error("boom", "dangling")
	if got := b.String(); got != "ERROR boom dangling\n" {
		t.Fatalf("unexpected line: %q", got)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	// Must not panic with any argument shape.
	var log Logger = NopLogger{}
	log.Debug("d")
	log.Info("i", "k", "v")
	log.Warn("w", "odd")
	log.Error("e", nil, nil)
}
