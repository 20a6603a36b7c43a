package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrDatabaseIDRequired is returned by New without a database id hash.
	ErrDatabaseIDRequired = errors.New("database id hash is required")

	// ErrAPIKeyRequired is returned by New without an API key.
	ErrAPIKeyRequired = errors.New("API key is required")

	// ErrAgentIDRequired is returned by chat calls without an agent id.
	ErrAgentIDRequired = errors.New("agentId is required in ChatRequestOptions")

	// ErrEmptyIdentifier is returned when a path identifier is empty.
	ErrEmptyIdentifier = errors.New("empty identifier")
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 * 1024

// APIError is returned for any non-2xx response.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the "message" field of the JSON error body, or the
	// standard status text when the body has none.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsNotFound reports whether err is a 404 APIError.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil && strings.TrimSpace(body.Message) != "" {
		apiErr.Message = body.Message
	}

	return apiErr
}
