package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf))

	logger.Info("client ready", "base_url", "https://api.example.com")

	out := buf.String()
	if !strings.Contains(out, "client ready") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "base_url=https://api.example.com") {
		t.Errorf("output %q missing attribute", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithFormat(FormatJSON), WithWriter(&buf))

	logger.Warn("already initialized", "base_url", "https://api.example.com")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "already initialized" {
		t.Errorf("msg = %v, want already initialized", record["msg"])
	}
	if record["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", record["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf), WithLevel(slog.LevelWarn))

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("output %q contains records below level", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("output %q missing warn record", out)
	}
}

func TestErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf))

	logger.Error(errors.New("connection refused"), "request failed", "attempt", 2)

	out := buf.String()
	if !strings.Contains(out, "connection refused") {
		t.Errorf("output %q missing error field", out)
	}
	if !strings.Contains(out, "attempt=2") {
		t.Errorf("output %q missing attribute", out)
	}
}

func TestWithAttachesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf)).With("component", "apix")

	logger.Info("retrying")

	if !strings.Contains(buf.String(), "component=apix") {
		t.Errorf("output %q missing attached field", buf.String())
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Info("nothing")
	logger.Error(errors.New("x"), "nothing")
	// No output to assert; the test just exercises the discard path.
}
