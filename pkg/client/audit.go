package client

import (
	"context"
	"net/http"
	"net/url"
)

// AuditAPI reads and writes the audit log.
type AuditAPI struct {
	c *Client
}

// List returns audit entries, typically paged with "limit" and "offset".
func (a *AuditAPI) List(ctx context.Context, params url.Values) ([]Audit, error) {
	var entries []Audit
	if err := a.c.do(ctx, http.MethodGet, "/api/audit", params, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create appends an audit entry.
func (a *AuditAPI) Create(ctx context.Context, entry *Audit) (*Response, error) {
	var resp Response
	if err := a.c.do(ctx, http.MethodPut, "/api/audit", nil, entry, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
