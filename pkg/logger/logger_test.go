package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONFormatIncludesErrorAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, "info", "json").With("component", "test")

	log.Error("load failed", errors.New("boom"), "dataset", "machines")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "load failed" || entry["error"] != "boom" || entry["dataset"] != "machines" || entry["component"] != "test" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, "warn", "text")

	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output for warn level: %q", out)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, "verbose", "text")

	log.Debug("debug line")
	log.Info("info line")

	if strings.Contains(buf.String(), "debug line") || !strings.Contains(buf.String(), "info line") {
		t.Fatalf("expected info level for unknown input, got %q", buf.String())
	}
}

func TestErrorWithNilErr(t *testing.T) {
	var buf bytes.Buffer
	NewWithOptions(&buf, "info", "text").Error("no cause", nil)

	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("nil error must not add an error attribute: %q", buf.String())
	}
}
