package client

import (
	"context"
	"iter"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openagentsbuilder/oab/pkg/stream"
)

// Chat request and response headers.
const (
	HeaderAgentID            = "Agent-Id"
	HeaderAgentSessionID     = "Agent-Session-Id"
	HeaderCurrentDatetimeISO = "Current-Datetime-Iso"
	HeaderCurrentDatetime    = "Current-Datetime"
	HeaderCurrentTimezone    = "Current-Timezone"
)

const (
	chatEndpoint        = "/api/chat/"
	isoDatetimeLayout   = "2006-01-02T15:04:05.000Z07:00"
	localDatetimeLayout = "1/2/2006, 3:04:05 PM"
)

// ChatRequestOptions selects the agent and session of a chat request.
type ChatRequestOptions struct {
	// AgentID is required.
	AgentID string

	// SessionID continues an existing conversation when set.
	SessionID string

	// Headers are sent last and override any header set by the client.
	Headers map[string]string

	// Attachments are made available to the agent for this conversation.
	Attachments []ChatAttachment
}

type chatBody struct {
	Messages    []ChatMessage    `json:"messages"`
	Attachments []ChatAttachment `json:"experimental_attachments,omitempty"`
}

// CollectResult is the outcome of CollectMessages.
type CollectResult struct {
	// Messages is the input conversation followed by the assistant reply.
	Messages []ChatMessage

	// SessionID is the server assigned session, empty if the server sent none.
	SessionID string
}

// ChatAPI talks to an agent.
type ChatAPI struct {
	c *Client
}

// Chat posts messages to the agent and returns the raw streaming response.
// The caller must close the response body.
func (a *ChatAPI) Chat(ctx context.Context, messages []ChatMessage, opts ChatRequestOptions) (*http.Response, error) {
	if opts.AgentID == "" {
		return nil, ErrAgentIDRequired
	}

	if messages == nil {
		messages = []ChatMessage{}
	}
	req, err := a.c.newRequest(ctx, http.MethodPost, chatEndpoint, nil, chatBody{
		Messages:    messages,
		Attachments: opts.Attachments,
	})
	if err != nil {
		return nil, err
	}

	now := a.c.now()
	req.Header.Set(HeaderAgentID, opts.AgentID)
	if opts.SessionID != "" {
		req.Header.Set(HeaderAgentSessionID, opts.SessionID)
	}
	req.Header.Set(HeaderCurrentDatetimeISO, now.UTC().Format(isoDatetimeLayout))
	req.Header.Set(HeaderCurrentDatetime, now.Format(localDatetimeLayout))
	req.Header.Set(HeaderCurrentTimezone, timezoneName(now))
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	a.c.logger.Debug("starting chat",
		"agent_id", opts.AgentID,
		"session_id", opts.SessionID,
		"messages", len(messages),
		"attachments", len(opts.Attachments),
	)

	return a.c.send(req)
}

// Open starts a chat and returns a decoder over the reply together with the
// session id from the response headers. The caller must drain or close the
// reader.
func (a *ChatAPI) Open(ctx context.Context, messages []ChatMessage, opts ChatRequestOptions) (*stream.Reader, string, error) {
	resp, err := a.Chat(ctx, messages, opts)
	if err != nil {
		return nil, "", err
	}
	return stream.NewReader(resp.Body, a.c.streamOptions...), resp.Header.Get(HeaderAgentSessionID), nil
}

// Stream lazily starts a chat when ranged over and yields its decoded
// events. A request failure is yielded as the only element. Breaking out of
// the loop closes the response.
func (a *ChatAPI) Stream(ctx context.Context, messages []ChatMessage, opts ChatRequestOptions) iter.Seq2[stream.Event, error] {
	return func(yield func(stream.Event, error) bool) {
		r, _, err := a.Open(ctx, messages, opts)
		if err != nil {
			yield(stream.Event{}, err)
			return
		}
		for ev, err := range r.All() {
			if !yield(ev, err) {
				return
			}
		}
	}
}

// CollectMessages runs one chat request and returns the conversation with
// the concatenated assistant text appended. The input slice is not modified.
func (a *ChatAPI) CollectMessages(ctx context.Context, messages []ChatMessage, opts ChatRequestOptions) (*CollectResult, error) {
	r, sessionID, err := a.Open(ctx, messages, opts)
	if err != nil {
		return nil, err
	}

	text, err := stream.Collect(r.All())
	if err != nil {
		return nil, err
	}

	out := make([]ChatMessage, 0, len(messages)+1)
	out = append(out, messages...)
	out = append(out, ChatMessage{Role: RoleAssistant, Content: text})

	return &CollectResult{Messages: out, SessionID: sessionID}, nil
}

// StreamWithCallbacks runs a chat and routes each event to the matching
// callback. Request and transport failures are reported to OnError and
// returned.
func (a *ChatAPI) StreamWithCallbacks(ctx context.Context, messages []ChatMessage, opts ChatRequestOptions, cb stream.Callbacks) error {
	return stream.Dispatch(a.Stream(ctx, messages, opts), cb)
}

// timezoneName reports the IANA zone name when it is known.
func timezoneName(t time.Time) string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if name := t.Location().String(); name != "Local" {
		return name
	}
	name, _ := t.Zone()
	return name
}
