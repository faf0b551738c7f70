// Package testingx provides test support for appkit packages.
//
// Overview:
//   - Responsibility: Logger capture and error-code assertions for tests
//   - Key Types: MockLogger recording entries
//   - Concurrency Model: MockLogger is safe for concurrent use
//   - Error Semantics: Failures reported through testing.T
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	... exercise code ...
//	logger.AssertLogged("WARN", "apix already initialized, keeping existing client")
package testingx

import (
	"sync"
	"testing"

	"github.com/ethanz-code/appkit/core/errors"
	"github.com/ethanz-code/appkit/core/log"
)

// LogEntry is one captured record.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// MockLogger records every log call for later assertion.
type MockLogger struct {
	t       *testing.T
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger creates a MockLogger bound to t.
func NewMockLogger(t *testing.T) *MockLogger {
	t.Helper()
	return &MockLogger{t: t}
}

// With returns the logger itself; attached fields are not tracked.
func (m *MockLogger) With(kv ...any) log.Logger { return m }

// Debug records a debug entry.
func (m *MockLogger) Debug(msg string, kv ...any) { m.record("DEBUG", msg, nil, kv) }

// Info records an info entry.
func (m *MockLogger) Info(msg string, kv ...any) { m.record("INFO", msg, nil, kv) }

// Warn records a warn entry.
func (m *MockLogger) Warn(msg string, kv ...any) { m.record("WARN", msg, nil, kv) }

// Error records an error entry.
func (m *MockLogger) Error(err error, msg string, kv ...any) { m.record("ERROR", msg, err, kv) }

func (m *MockLogger) record(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg, Fields: kv, Error: err})
}

// Entries returns a copy of all recorded entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// AssertLogged fails the test unless an entry with the level and message was
// recorded.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.Level == level && e.Message == msg {
			return
		}
	}
	m.t.Errorf("expected log entry not found: level=%s msg=%q", level, msg)
}

// AssertCode fails the test unless err carries the expected code.
func AssertCode(t *testing.T, err error, want errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	if got := errors.CodeOf(err); got != want {
		t.Errorf("error code = %s, want %s", got, want)
	}
}
