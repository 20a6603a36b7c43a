package client

import (
	"context"
	"net/http"
)

// StatsAPI records and reads token usage.
type StatsAPI struct {
	c *Client
}

// Put records a usage event.
func (s *StatsAPI) Put(ctx context.Context, stat *Stat) (*Response, error) {
	var resp Response
	if err := s.c.do(ctx, http.MethodPut, "/api/stats", nil, stat, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Aggregated returns usage totals for this month, last month and today.
func (s *StatsAPI) Aggregated(ctx context.Context) (*AggregatedStats, error) {
	var stats AggregatedStats
	if err := s.c.do(ctx, http.MethodGet, "/api/stats/aggregated", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
