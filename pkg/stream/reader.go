package stream

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync"

	"github.com/openagentsbuilder/oab/pkg/logger"
)

const defaultReadSize = 32 * 1024

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for dropped-frame diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLegacy overrides the legacy fallback rules.
func WithLegacy(legacy LegacyOptions) Option {
	return func(r *Reader) {
		r.classifier = NewClassifier(legacy)
	}
}

// WithReadSize sets the size of each read from the body.
func WithReadSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.readSize = n
		}
	}
}

// Reader decodes protocol events from a streaming response body.
//
// ┌──────────────────┐   ┌──────────┐   ┌────────────┐
// │ body io.Reader   │──▶│ Splitter │──▶│ Classifier │──▶ Event
// └──────────────────┘   └──────────┘   └────────────┘
//
// A Reader serves one response and is single pass: it must not be driven by
// more than one goroutine. The body is closed when the stream ends, when a
// read fails, or when Close is called, whichever comes first.
type Reader struct {
	body       io.ReadCloser
	splitter   Splitter
	classifier *Classifier
	logger     *slog.Logger
	readSize   int
	buf        []byte

	pending  []Event
	finished bool
	err      error

	closeOnce sync.Once
	closeErr  error
}

// NewReader returns a Reader over body. The Reader owns body from here on.
func NewReader(body io.ReadCloser, opts ...Option) *Reader {
	r := &Reader{
		body:       body,
		classifier: NewClassifier(LegacyOptions{}),
		logger:     logger.Nop(),
		readSize:   defaultReadSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Next returns the next event. It blocks only while reading the body; all
// events already decoded from earlier reads are returned without I/O.
// Next returns nil, nil once the stream is exhausted. A transport error is
// returned once, after every event decoded before it.
func (r *Reader) Next() (*Event, error) {
	for {
		if len(r.pending) > 0 {
			ev := r.pending[0]
			r.pending = r.pending[1:]
			return &ev, nil
		}

		if r.finished {
			err := r.err
			r.err = nil
			return nil, err
		}

		r.fill()
	}
}

// fill performs one read and decodes every complete line it yields.
func (r *Reader) fill() {
	if r.buf == nil {
		r.buf = make([]byte, r.readSize)
	}
	n, readErr := r.body.Read(r.buf)

	if n > 0 {
		for _, line := range r.splitter.Feed(r.buf[:n]) {
			ev, ok, err := r.classifier.Classify(line)
			switch {
			case errors.Is(err, ErrDone):
				r.logger.Debug("legacy done sentinel received")
				r.finish(nil)
				return
			case err != nil:
				r.logger.Warn("dropping stream frame", "error", err)
				continue
			case !ok:
				continue
			}
			r.pending = append(r.pending, ev)
		}
	}

	switch {
	case readErr == nil:
	case errors.Is(readErr, io.EOF):
		if rest := r.splitter.Remainder(); rest != "" {
			r.logger.Debug("discarding incomplete trailing frame", "bytes", len(rest))
		}
		r.finish(nil)
	default:
		r.finish(fmt.Errorf("reading stream: %w", readErr))
	}
}

func (r *Reader) finish(err error) {
	r.finished = true
	r.err = err
	r.splitter.Reset()
	_ = r.Close()
}

// Close releases the body and ends the stream; events already decoded are
// still returned by Next. It is safe to call more than once.
func (r *Reader) Close() error {
	r.finished = true
	r.closeOnce.Do(func() {
		r.closeErr = r.body.Close()
	})
	return r.closeErr
}

// All returns the events as a single-use sequence. A transport error is
// yielded as the final element. The body is closed when the sequence ends,
// including when the caller breaks out early or panics in the loop body.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		defer r.Close()

		for {
			ev, err := r.Next()
			if err != nil {
				yield(Event{}, err)
				return
			}
			if ev == nil {
				return
			}
			if !yield(*ev, nil) {
				return
			}
		}
	}
}
