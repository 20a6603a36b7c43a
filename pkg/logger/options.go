package logger

import (
	"io"
	"log/slog"
)

// Format selects the handler behind a logger.
type Format int

const (
	// FormatText is slog's key=value text handler.
	FormatText Format = iota

	// FormatJSON is slog's JSON handler, one record per line.
	FormatJSON

	// FormatPretty is the colorized charmbracelet/log handler for terminals.
	FormatPretty
)

// Option configures a Logger created with New.
type Option func(*settings)

// WithDebug lowers the level to Debug when true.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.level = slog.LevelInfo
		if debug {
			s.level = slog.LevelDebug
		}
	}
}

// WithFormat picks the output handler. Defaults to FormatText.
func WithFormat(f Format) Option {
	return func(s *settings) {
		s.format = f
	}
}

// WithWriter overrides the output writer. Defaults to os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(s *settings) {
		s.w = w
	}
}

// WithSource adds the caller's file:line to each record.
func WithSource(source bool) Option {
	return func(s *settings) {
		s.source = source
	}
}
