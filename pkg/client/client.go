// Package client is a Go client for the Open Agents Builder REST API.
//
// A Client groups one sub-client per resource (agents, keys, attachments,
// sessions, products, orders, calendar, audit, stats, results, memory) and a
// Chat sub-client that streams agent replies through pkg/stream.
//
//	c, err := client.New(client.Config{
//		DatabaseIDHash: "35f5c5b1...",
//		APIKey:         os.Getenv("OAB_API_KEY"),
//	})
//	agents, err := c.Agents.List(ctx, nil)
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openagentsbuilder/oab/pkg/logger"
	"github.com/openagentsbuilder/oab/pkg/stream"
)

const (
	// DefaultBaseURL is the hosted Open Agents Builder instance.
	DefaultBaseURL = "https://app.openagentsbuilder.com"

	// DefaultTimeout bounds each non-streaming call. Chat requests are
	// bounded by their context only.
	DefaultTimeout = 60 * time.Second

	headerAuthorization  = "Authorization"
	headerContentType    = "Content-Type"
	headerDatabaseIDHash = "Database-Id-Hash"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// DatabaseIDHash selects the tenant database.
	DatabaseIDHash string

	// APIKey is sent as a bearer token.
	APIKey string

	// HTTPClient sends requests. Defaults to an *http.Client without a
	// global timeout so streaming replies are not cut off.
	HTTPClient Doer

	// Timeout bounds each non-streaming call. Defaults to DefaultTimeout;
	// a negative value disables it.
	Timeout time.Duration

	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger *slog.Logger

	// StreamOptions are applied to every chat stream reader.
	StreamOptions []stream.Option
}

// Client is the Open Agents Builder API client. It is safe for concurrent use.
type Client struct {
	baseURL        string
	databaseIDHash string
	apiKey         string
	httpClient     Doer
	timeout        time.Duration
	logger         *slog.Logger
	streamOptions  []stream.Option
	now            func() time.Time

	Agents      *AgentsAPI
	Keys        *KeysAPI
	Attachments *AttachmentsAPI
	Stats       *StatsAPI
	Audit       *AuditAPI
	Results     *ResultsAPI
	Sessions    *SessionsAPI
	Calendar    *CalendarAPI
	Products    *ProductsAPI
	Orders      *OrdersAPI
	Memory      *MemoryAPI
	Chat        *ChatAPI
}

// New creates a Client.
func New(c Config) (*Client, error) {
	if c.DatabaseIDHash == "" {
		return nil, ErrDatabaseIDRequired
	}
	if c.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	log := c.Logger
	if log == nil {
		log = logger.Nop()
	}

	cl := &Client{
		baseURL:        baseURL,
		databaseIDHash: c.DatabaseIDHash,
		apiKey:         c.APIKey,
		httpClient:     httpClient,
		timeout:        timeout,
		logger:         log,
		streamOptions:  append([]stream.Option{stream.WithLogger(log)}, c.StreamOptions...),
		now:            time.Now,
	}

	cl.Agents = &AgentsAPI{c: cl}
	cl.Keys = &KeysAPI{c: cl}
	cl.Attachments = &AttachmentsAPI{c: cl}
	cl.Stats = &StatsAPI{c: cl}
	cl.Audit = &AuditAPI{c: cl}
	cl.Results = &ResultsAPI{c: cl}
	cl.Sessions = &SessionsAPI{c: cl}
	cl.Calendar = &CalendarAPI{c: cl}
	cl.Products = &ProductsAPI{c: cl}
	cl.Orders = &OrdersAPI{c: cl}
	cl.Memory = &MemoryAPI{c: cl}
	cl.Chat = &ChatAPI{c: cl}

	return cl, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds an authenticated request. A non-nil body is sent as JSON
// for every method but GET.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil && method != http.MethodGet {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set(headerAuthorization, "Bearer "+c.apiKey)
	req.Header.Set(headerDatabaseIDHash, c.databaseIDHash)
	if reader != nil {
		req.Header.Set(headerContentType, "application/json")
	}

	return req, nil
}

// send issues req and fails fast on a non-2xx status. The caller owns the
// returned body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	c.logger.Debug("sending request",
		"method", req.Method,
		"url", req.URL.Redacted(),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := newAPIError(resp)
		c.logger.Debug("request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return nil, apiErr
	}

	return resp, nil
}

// do runs a JSON request/response round trip. out may be nil. An empty
// response body leaves out untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// pathEscape escapes a single path segment and rejects empty identifiers.
func pathEscape(what, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyIdentifier, what)
	}
	return url.PathEscape(id), nil
}
