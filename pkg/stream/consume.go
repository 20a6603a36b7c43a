package stream

import (
	"iter"
	"strings"
)

// Collect drains events and concatenates the content of every text event in
// order. Other kinds are skipped. On error the partial text is returned along
// with it.
func Collect(events iter.Seq2[Event, error]) (string, error) {
	var b strings.Builder
	for ev, err := range events {
		if err != nil {
			return b.String(), err
		}
		if ev.Kind == KindText {
			b.WriteString(ev.Text())
		}
	}
	return b.String(), nil
}

// Handler receives the content of one event.
type Handler func(content any)

// Handlers maps event kinds to their handler.
type Handlers map[Kind]Handler

// Callbacks configures Dispatch.
type Callbacks struct {
	// Handlers is looked up once per event; kinds without an entry are
	// dropped.
	Handlers Handlers

	// OnFinish runs after the stream ends without error.
	OnFinish func()

	// OnError receives the error message when the stream fails. The error
	// is still returned by Dispatch.
	OnError func(message string)
}

// Dispatch drains events, calling the handler registered for each event kind.
func Dispatch(events iter.Seq2[Event, error], cb Callbacks) error {
	for ev, err := range events {
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(err.Error())
			}
			return err
		}
		if h := cb.Handlers[ev.Kind]; h != nil {
			h(ev.Content)
		}
	}

	if cb.OnFinish != nil {
		cb.OnFinish()
	}
	return nil
}
