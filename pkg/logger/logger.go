// Package logger provides opinionated logging capabilities for oab.
//
// Every logger is a *slog.Logger. The handler behind it is picked by
// WithFormat: a colorized charmbracelet/log handler for the terminal, slog's
// JSON handler for trace files, or slog's text handler by default.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type settings struct {
	level  slog.Level
	format Format
	source bool
	w      io.Writer
}

// New builds a *slog.Logger from the given options.
func New(opts ...Option) *slog.Logger {
	s := &settings{
		level: slog.LevelInfo,
		w:     os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	switch s.format {
	case FormatPretty:
		return slog.New(charmlog.NewWithOptions(s.w, charmlog.Options{
			Level:           charmlog.Level(s.level),
			ReportTimestamp: true,
			ReportCaller:    s.source,
		}))
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(s.w, &slog.HandlerOptions{
			Level:     s.level,
			AddSource: s.source,
		}))
	default:
		return slog.New(slog.NewTextHandler(s.w, &slog.HandlerOptions{
			Level:     s.level,
			AddSource: s.source,
		}))
	}
}

// OpenTrace opens path for appending and returns a debug level JSON logger
// writing to it. The caller closes the returned file.
func OpenTrace(path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	l := New(
		WithFormat(FormatJSON),
		WithDebug(true),
		WithSource(true),
		WithWriter(f),
	)
	return l, f, nil
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by NewContext.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	return l, ok && l != nil
}
