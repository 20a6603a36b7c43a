package client

import (
	"context"
	"net/http"
	"net/url"
)

// ResultsAPI reads session results.
type ResultsAPI struct {
	c *Client
}

// List returns results matching the optional query parameters.
func (r *ResultsAPI) List(ctx context.Context, params url.Values) ([]Result, error) {
	var results []Result
	if err := r.c.do(ctx, http.MethodGet, "/api/result", params, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Delete removes the result of a session.
func (r *ResultsAPI) Delete(ctx context.Context, sessionID string) (*Response, error) {
	seg, err := pathEscape("session id", sessionID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := r.c.do(ctx, http.MethodDelete, "/api/result/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
