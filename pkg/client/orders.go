package client

import (
	"context"
	"net/http"
	"net/url"
)

// OrdersAPI manages orders and carts.
type OrdersAPI struct {
	c *Client
}

// List returns orders. The server answers with either a bare array or a paged
// envelope depending on the parameters, so the result is decoded into out.
func (o *OrdersAPI) List(ctx context.Context, params url.Values, out any) error {
	return o.c.do(ctx, http.MethodGet, "/api/order", params, nil, out)
}

// Upsert stores an order.
func (o *OrdersAPI) Upsert(ctx context.Context, order *Order) (*Response, error) {
	var resp Response
	if err := o.c.do(ctx, http.MethodPut, "/api/order", nil, order, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes an order.
func (o *OrdersAPI) Delete(ctx context.Context, orderID string) (*Response, error) {
	seg, err := pathEscape("order id", orderID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := o.c.do(ctx, http.MethodDelete, "/api/order/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
