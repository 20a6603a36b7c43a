package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// AttachmentsAPI manages stored files.
type AttachmentsAPI struct {
	c *Client
}

// List returns all attachments.
func (a *AttachmentsAPI) List(ctx context.Context) ([]Attachment, error) {
	var attachments []Attachment
	if err := a.c.do(ctx, http.MethodGet, "/api/attachment", nil, nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// Query searches attachments. The response shape depends on the parameters
// (paging, full text search) so it is returned undecoded.
func (a *AttachmentsAPI) Query(ctx context.Context, params url.Values, out any) error {
	return a.c.do(ctx, http.MethodGet, "/api/attachment/query", params, nil, out)
}

// Upsert stores attachment metadata.
func (a *AttachmentsAPI) Upsert(ctx context.Context, attachment *Attachment) (*Response, error) {
	var resp Response
	if err := a.c.do(ctx, http.MethodPut, "/api/attachment", nil, attachment, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes the attachment with the given storage key.
func (a *AttachmentsAPI) Delete(ctx context.Context, storageKey string) (*Response, error) {
	seg, err := pathEscape("storage key", storageKey)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := a.c.do(ctx, http.MethodDelete, "/api/attachment/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Export downloads every attachment as a single archive.
func (a *AttachmentsAPI) Export(ctx context.Context) ([]byte, error) {
	if a.c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.c.timeout)
		defer cancel()
	}

	req, err := a.c.newRequest(ctx, http.MethodGet, "/api/attachment/export", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.c.send(req)
	if err != nil {
		return nil, fmt.Errorf("exporting attachments: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	return data, nil
}
