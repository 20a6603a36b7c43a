package stream

import "errors"

var (
	// ErrMissingSeparator is returned for a line without a ':' separator.
	ErrMissingSeparator = errors.New("frame has no separator")

	// ErrMalformedPayload is returned when a structured payload is not valid JSON.
	ErrMalformedPayload = errors.New("malformed frame payload")

	// ErrDone signals the legacy end-of-stream sentinel. It is a control value,
	// never surfaced by Reader.
	ErrDone = errors.New("stream done")
)
