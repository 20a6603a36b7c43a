package client

import (
	"context"
	"net/http"
	"net/url"
)

// AgentsAPI manages agent definitions.
type AgentsAPI struct {
	c *Client
}

// List returns the agents matching the optional query parameters.
func (a *AgentsAPI) List(ctx context.Context, params url.Values) ([]Agent, error) {
	var agents []Agent
	if err := a.c.do(ctx, http.MethodGet, "/api/agent", params, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// Upsert creates the agent, or updates it when ID is set.
func (a *AgentsAPI) Upsert(ctx context.Context, agent *Agent) (*Response, error) {
	var resp Response
	if err := a.c.do(ctx, http.MethodPut, "/api/agent", nil, agent, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes an agent.
func (a *AgentsAPI) Delete(ctx context.Context, id string) (*Response, error) {
	seg, err := pathEscape("agent id", id)
	if err != nil {
		return nil, err
	}
	var resp Response
	if err := a.c.do(ctx, http.MethodDelete, "/api/agent/"+seg, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
