// Package log defines the logging interface shared across appkit packages.
//
// Overview:
//   - Responsibility: Stable structured-logging contract; no implementation
//   - Key Types: Logger interface with key-value logging
//   - Concurrency Model: Implementations must be safe for concurrent use
//   - Error Semantics: Error takes the error as first parameter
//
// Usage:
//
//	logger.Info("client ready", "base_url", opts.BaseURL)
package log

// Logger is a structured logger in the slog key-value style.
// Implementations must be safe for concurrent use.
type Logger interface {
	// With returns a Logger with the given key-value pairs attached to
	// every subsequent record.
	With(kv ...any) Logger

	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, kv ...any)

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)

	// Error logs an error with a message and optional key-value pairs.
	Error(err error, msg string, kv ...any)
}
