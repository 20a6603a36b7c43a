package client

import (
	"context"
	"net/http"
	"net/url"
)

// SessionsAPI lists and removes chat sessions.
type SessionsAPI struct {
	c *Client
}

// List returns sessions matching the optional query parameters.
func (s *SessionsAPI) List(ctx context.Context, params url.Values) ([]Session, error) {
	var sessions []Session
	if err := s.c.do(ctx, http.MethodGet, "/api/session", params, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete removes a session.
func (s *SessionsAPI) Delete(ctx context.Context, sessionID string) (*Response, error) {
	seg, err := pathEscape("session id", sessionID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := s.c.do(ctx, http.MethodDelete, "/api/session/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
