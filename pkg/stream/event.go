// Package stream decodes the line-delimited chat protocol streamed by the
// Open Agents Builder chat endpoint.
//
// Each line of the response body is a frame of the form "<tag>:<payload>".
// The tag selects the event kind and how the payload is parsed:
//
//	0:"Hello"                       text, outer quotes stripped
//	g:thinking about it             reasoning, raw string
//	9:{"toolCallId":"1","args":{}}  tool call, JSON payload
//	3:something went wrong          error, raw string
//
// Lines in the older "data: ..." format are still accepted and surface as text
// events; "data: [DONE]" ends the stream.
//
// The Reader is the single decoding primitive. Collect and Dispatch consume the
// event sequence it produces, so all consumption modes share one tag table.
package stream

// Kind identifies the semantic type of an Event.
type Kind string

const (
	KindText               Kind = "text"
	KindReasoning          Kind = "reasoning"
	KindRedactedReasoning  Kind = "redacted_reasoning"
	KindReasoningSignature Kind = "reasoning_signature"
	KindSource             Kind = "source"
	KindFile               Kind = "file"
	KindData               Kind = "data"
	KindAnnotation         Kind = "annotation"
	KindError              Kind = "error"
	KindToolCallStart      Kind = "tool_call_start"
	KindToolCallDelta      Kind = "tool_call_delta"
	KindToolCall           Kind = "tool_call"
	KindToolResult         Kind = "tool_result"
	KindStepStart          Kind = "step_start"
	KindStepFinish         Kind = "step_finish"
	KindMessageFinish      Kind = "message_finish"
)

// Kinds returns every event kind the decoder can emit, in tag table order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(tagTable))
	for _, t := range tagTable {
		kinds = append(kinds, t.kind)
	}
	return kinds
}

// Frame is one protocol line split at its first separator, before
// classification.
type Frame struct {
	// Tag is the type tag preceding the first ':'.
	Tag string

	// Payload is everything after the first ':'.
	Payload string
}

// Event is a classified frame.
type Event struct {
	Kind Kind

	// Content is a string for text, reasoning and error events. For every
	// other kind it holds the decoded JSON payload (map[string]any, []any,
	// string, float64, bool or nil).
	Content any
}

// Text returns Content as a string, or "" when the content is structured.
func (e Event) Text() string {
	s, _ := e.Content.(string)
	return s
}
