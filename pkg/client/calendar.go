package client

import (
	"context"
	"net/http"
	"net/url"
)

// CalendarAPI manages agent calendar events.
type CalendarAPI struct {
	c *Client
}

// List returns calendar events, usually filtered by "agentId".
func (c *CalendarAPI) List(ctx context.Context, params url.Values) ([]CalendarEvent, error) {
	var events []CalendarEvent
	if err := c.c.do(ctx, http.MethodGet, "/api/calendar", params, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Upsert stores a calendar event.
func (c *CalendarAPI) Upsert(ctx context.Context, event *CalendarEvent) (*Response, error) {
	var resp Response
	if err := c.c.do(ctx, http.MethodPut, "/api/calendar", nil, event, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a calendar event.
func (c *CalendarAPI) Delete(ctx context.Context, eventID string) (*Response, error) {
	seg, err := pathEscape("event id", eventID)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := c.c.do(ctx, http.MethodDelete, "/api/calendar/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
