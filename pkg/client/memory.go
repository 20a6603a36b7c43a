package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// MemoryAPI manages server-side vector stores and their records.
type MemoryAPI struct {
	c *Client
}

// ListStoresParams pages and filters the store listing.
type ListStoresParams struct {
	Limit  int
	Offset int
	Query  string
}

func (p *ListStoresParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	return v
}

// ListRecordsParams pages records and optionally ranks them against a query.
type ListRecordsParams struct {
	Limit           int
	Offset          int
	EmbeddingSearch string
	TopK            int
}

func (p *ListRecordsParams) values() url.Values {
	if p == nil {
		return nil
	}
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.EmbeddingSearch != "" {
		v.Set("embeddingSearch", p.EmbeddingSearch)
	}
	if p.TopK > 0 {
		v.Set("topK", strconv.Itoa(p.TopK))
	}
	return v
}

// CreateStore creates an empty store.
func (m *MemoryAPI) CreateStore(ctx context.Context, storeName string) (*Response, error) {
	if _, err := pathEscape("store name", storeName); err != nil {
		return nil, err
	}
	var resp Response
	body := map[string]string{"storeName": storeName}
	if err := m.c.do(ctx, http.MethodPost, "/api/memory/create", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListStores returns a page of stores.
func (m *MemoryAPI) ListStores(ctx context.Context, params *ListStoresParams) (*PaginatedVectorStores, error) {
	var page PaginatedVectorStores
	if err := m.c.do(ctx, http.MethodGet, "/api/memory/query", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetStore returns every record of a store.
func (m *MemoryAPI) GetStore(ctx context.Context, filename string) ([]VectorStoreEntry, error) {
	seg, err := pathEscape("store", filename)
	if err != nil {
		return nil, err
	}
	var entries []VectorStoreEntry
	if err := m.c.do(ctx, http.MethodGet, "/api/memory/"+seg, nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteStore removes a store and its records.
func (m *MemoryAPI) DeleteStore(ctx context.Context, filename string) (*Response, error) {
	seg, err := pathEscape("store", filename)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := m.c.do(ctx, http.MethodDelete, "/api/memory/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRecords returns a page of records of a store.
func (m *MemoryAPI) ListRecords(ctx context.Context, filename string, params *ListRecordsParams) (*PaginatedRecords, error) {
	seg, err := pathEscape("store", filename)
	if err != nil {
		return nil, err
	}
	var page PaginatedRecords
	if err := m.c.do(ctx, http.MethodGet, "/api/memory/"+seg+"/records", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateRecord adds a record to a store. A record without an ID gets a
// random UUID, written back to record.
func (m *MemoryAPI) CreateRecord(ctx context.Context, filename string, record *VectorStoreEntry) error {
	seg, err := pathEscape("store", filename)
	if err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	var resp struct {
		Success bool `json:"success"`
	}
	return m.c.do(ctx, http.MethodPost, "/api/memory/"+seg+"/records", nil, record, &resp)
}

// DeleteRecord removes one record from a store.
func (m *MemoryAPI) DeleteRecord(ctx context.Context, filename, recordID string) (*Response, error) {
	store, err := pathEscape("store", filename)
	if err != nil {
		return nil, err
	}
	id, err := pathEscape("record id", recordID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := m.c.do(ctx, http.MethodDelete, "/api/memory/"+store+"/records/"+id, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateEmbeddings asks the server to embed content.
func (m *MemoryAPI) GenerateEmbeddings(ctx context.Context, content string) ([]float64, error) {
	var resp struct {
		Embedding []float64 `json:"embedding"`
	}
	body := map[string]string{"content": content}
	if err := m.c.do(ctx, http.MethodPost, "/api/memory/embeddings", nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}
