package client

import (
	"context"
	"net/http"
	"net/url"
)

// ProductsAPI manages the product catalog.
type ProductsAPI struct {
	c *Client
}

// List returns products matching the optional query parameters.
func (p *ProductsAPI) List(ctx context.Context, params url.Values) ([]Product, error) {
	var products []Product
	if err := p.c.do(ctx, http.MethodGet, "/api/product", params, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Upsert stores a product.
func (p *ProductsAPI) Upsert(ctx context.Context, product *Product) (*Response, error) {
	var resp Response
	if err := p.c.do(ctx, http.MethodPut, "/api/product", nil, product, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a product.
func (p *ProductsAPI) Delete(ctx context.Context, productID string) (*Response, error) {
	seg, err := pathEscape("product id", productID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := p.c.do(ctx, http.MethodDelete, "/api/product/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
