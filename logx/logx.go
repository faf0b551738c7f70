// Package logx implements core/log.Logger on top of log/slog.
//
// Overview:
//   - Responsibility: Structured logging with text or JSON output
//   - Key Types: Logger implementation, Options for configuration
//   - Concurrency Model: Loggers are safe for concurrent use
//   - Error Semantics: No errors returned; logging never fails the caller
//
// Usage:
//
//	logger := logx.New(logx.WithFormat(logx.FormatJSON), logx.WithLevel(slog.LevelDebug))
//	logger.Info("store hydrated", "store", "session")
package logx

import (
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/ethanz-code/appkit/core/log"
)

// Format selects the output encoding.
type Format string

const (
	// FormatText emits key=value records via slog's text handler.
	FormatText Format = "text"
	// FormatJSON emits one JSON object per record.
	FormatJSON Format = "json"
)

// Options configures the logger.
type Options struct {
	Format Format     // Output format (default: text)
	Level  slog.Level // Minimum level (default: info)
	Writer io.Writer  // Destination (default: os.Stderr)
}

// Option mutates Options.
type Option func(*Options)

// WithFormat sets the output format.
func WithFormat(f Format) Option {
	return func(o *Options) { o.Format = f }
}

// WithLevel sets the minimum log level.
func WithLevel(l slog.Level) Option {
	return func(o *Options) { o.Level = l }
}

// WithWriter sets the output destination.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

// Logger adapts *slog.Logger to the core/log.Logger interface.
type Logger struct {
	sl *slog.Logger
}

// New creates a Logger with the given options.
func New(opts ...Option) log.Logger {
	options := Options{
		Format: FormatText,
		Level:  slog.LevelInfo,
		Writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: options.Level}
	var h slog.Handler
	if options.Format == FormatJSON {
		h = slog.NewJSONHandler(options.Writer, hopts)
	} else {
		h = slog.NewTextHandler(options.Writer, hopts)
	}
	return &Logger{sl: slog.New(h)}
}

// Nop returns a logger that discards everything. Useful as a library default.
func Nop() log.Logger {
	return &Logger{sl: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))}
}

// With returns a Logger with the key-value pairs attached.
func (l *Logger) With(kv ...any) log.Logger {
	return &Logger{sl: l.sl.With(kv...)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, kv ...any) {
	l.sl.Debug(msg, kv...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, kv ...any) {
	l.sl.Info(msg, kv...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, kv ...any) {
	l.sl.Warn(msg, kv...)
}

// Error logs at error level with the error attached as a field.
func (l *Logger) Error(err error, msg string, kv ...any) {
	if err != nil {
		kv = append([]any{"error", err}, kv...)
	}
	l.sl.Error(msg, kv...)
}
