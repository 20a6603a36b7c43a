package stream

import (
	"encoding/json"
	"fmt"
	"strings"
)

type payloadParser int

const (
	parseQuoted payloadParser = iota
	parseRaw
	parseJSON
)

type tagEntry struct {
	tag   string
	kind  Kind
	parse payloadParser
}

// tagTable is the frame tag to event kind mapping of the chat protocol.
var tagTable = []tagEntry{
	{"0", KindText, parseQuoted},
	{"g", KindReasoning, parseRaw},
	{"i", KindRedactedReasoning, parseJSON},
	{"j", KindReasoningSignature, parseJSON},
	{"h", KindSource, parseJSON},
	{"k", KindFile, parseJSON},
	{"2", KindData, parseJSON},
	{"8", KindAnnotation, parseJSON},
	{"3", KindError, parseRaw},
	{"b", KindToolCallStart, parseJSON},
	{"c", KindToolCallDelta, parseJSON},
	{"9", KindToolCall, parseJSON},
	{"a", KindToolResult, parseJSON},
	{"f", KindStepStart, parseJSON},
	{"e", KindStepFinish, parseJSON},
	{"d", KindMessageFinish, parseJSON},
}

var tagIndex = func() map[string]tagEntry {
	m := make(map[string]tagEntry, len(tagTable))
	for _, t := range tagTable {
		m[t.tag] = t
	}
	return m
}()

const (
	// DefaultLegacyPrefix marks a line in the older SSE-style format.
	DefaultLegacyPrefix = "data:"

	// DefaultLegacyDone is the legacy payload that ends the stream.
	DefaultLegacyDone = "[DONE]"
)

// LegacyOptions controls the fallback for lines whose tag is not in the
// protocol table.
type LegacyOptions struct {
	// Disabled turns the fallback off; unknown tags are then always ignored.
	Disabled bool

	// Prefix marks a legacy line. Defaults to DefaultLegacyPrefix.
	Prefix string

	// Done is the trimmed legacy payload that terminates the stream.
	// Defaults to DefaultLegacyDone.
	Done string
}

func (o LegacyOptions) withDefaults() LegacyOptions {
	if o.Prefix == "" {
		o.Prefix = DefaultLegacyPrefix
	}
	if o.Done == "" {
		o.Done = DefaultLegacyDone
	}
	return o
}

// Classifier turns single trimmed protocol lines into events.
type Classifier struct {
	legacy LegacyOptions
}

// NewClassifier returns a Classifier using the given legacy fallback rules.
func NewClassifier(legacy LegacyOptions) *Classifier {
	return &Classifier{legacy: legacy.withDefaults()}
}

// SplitFrame splits line at its first ':'.
func SplitFrame(line string) (Frame, error) {
	tag, payload, ok := strings.Cut(line, ":")
	if !ok {
		return Frame{}, fmt.Errorf("%w: %q", ErrMissingSeparator, line)
	}
	return Frame{Tag: tag, Payload: payload}, nil
}

// Classify decodes one trimmed, non-empty line.
//
// It returns ok=false with a nil error for lines that are deliberately
// ignored (unknown tags outside the legacy format). A legacy done line yields
// ErrDone. ErrMissingSeparator and ErrMalformedPayload are local to the line:
// callers drop it and carry on.
func (c *Classifier) Classify(line string) (ev Event, ok bool, err error) {
	frame, err := SplitFrame(line)
	if err != nil {
		return Event{}, false, err
	}

	entry, known := tagIndex[frame.Tag]
	if !known {
		return c.classifyLegacy(line)
	}

	switch entry.parse {
	case parseQuoted:
		content := strings.TrimPrefix(frame.Payload, `"`)
		content = strings.TrimSuffix(content, `"`)
		return Event{Kind: entry.kind, Content: content}, true, nil

	case parseRaw:
		return Event{Kind: entry.kind, Content: frame.Payload}, true, nil

	default:
		var content any
		if err := json.Unmarshal([]byte(frame.Payload), &content); err != nil {
			return Event{}, false, fmt.Errorf("%w: tag %q: %v", ErrMalformedPayload, frame.Tag, err)
		}
		return Event{Kind: entry.kind, Content: content}, true, nil
	}
}

func (c *Classifier) classifyLegacy(line string) (Event, bool, error) {
	if c.legacy.Disabled || !strings.HasPrefix(line, c.legacy.Prefix) {
		return Event{}, false, nil
	}

	data := strings.TrimSpace(strings.TrimPrefix(line, c.legacy.Prefix))
	if data == c.legacy.Done {
		return Event{}, false, ErrDone
	}

	return Event{Kind: KindText, Content: data}, true, nil
}
