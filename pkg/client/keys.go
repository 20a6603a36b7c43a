package client

import (
	"context"
	"net/http"
	"net/url"
)

// KeysAPI manages API keys.
type KeysAPI struct {
	c *Client
}

// List returns the API keys of the database.
func (k *KeysAPI) List(ctx context.Context, params url.Values) ([]Key, error) {
	var keys []Key
	if err := k.c.do(ctx, http.MethodGet, "/api/keys", params, nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Upsert stores a key record.
func (k *KeysAPI) Upsert(ctx context.Context, key *Key) (*Response, error) {
	var resp Response
	if err := k.c.do(ctx, http.MethodPut, "/api/keys", nil, key, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete revokes the key with the given locator hash.
func (k *KeysAPI) Delete(ctx context.Context, keyLocatorHash string) (*Response, error) {
	seg, err := pathEscape("key locator hash", keyLocatorHash)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := k.c.do(ctx, http.MethodDelete, "/api/keys/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
