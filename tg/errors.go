package tg

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Failure-kind sentinels. Every error returned by the facade matches exactly
// one of these with errors.Is; use errors.As to extract *APIError or
// *HTTPError details.
var (
	// ErrSerialize marks a failure in the request's serialize step,
	// before any connector exchange.
	ErrSerialize = errors.New("tgwire: request serialization failed")

	// ErrTransport marks a connector failure: network, TLS, cancelled
	// context, connection closed.
	ErrTransport = errors.New("tgwire: transport failed")

	// ErrDeserialize marks a response body that could not be parsed under
	// the expected response type.
	ErrDeserialize = errors.New("tgwire: response deserialization failed")
)

// API-envelope sentinels detected from error codes and descriptions.
var (
	ErrUnauthorized    = errors.New("tgwire: unauthorized (invalid token)")
	ErrForbidden       = errors.New("tgwire: forbidden")
	ErrNotFound        = errors.New("tgwire: not found")
	ErrTooManyRequests = errors.New("tgwire: too many requests")
	ErrChatNotFound    = errors.New("tgwire: chat not found")
	ErrBotBlocked      = errors.New("tgwire: bot blocked by user")
)

// ResponseParameters contains information about why a request was unsuccessful.
type ResponseParameters struct {
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	RetryAfter      int   `json:"retry_after,omitempty"`
}

// APIError is a structured error envelope returned by the Telegram API.
// Use errors.As to extract details, errors.Is to match sentinels.
type APIError struct {
	Code        int
	Description string
	RetryAfter  time.Duration
	Parameters  *ResponseParameters
	cause       error
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("tgwire: api error: %s (code=%d, retry_after=%s)",
			e.Description, e.Code, e.RetryAfter)
	}
	return fmt.Sprintf("tgwire: api error: %s (code=%d)", e.Description, e.Code)
}

// Unwrap returns the underlying sentinel error for errors.Is support.
func (e *APIError) Unwrap() error { return e.cause }

// NewAPIError creates an APIError with automatic sentinel detection.
func NewAPIError(code int, description string, params *ResponseParameters) *APIError {
	e := &APIError{
		Code:        code,
		Description: description,
		Parameters:  params,
		cause:       detectSentinel(code, description),
	}
	if params != nil && params.RetryAfter > 0 {
		e.RetryAfter = time.Duration(params.RetryAfter) * time.Second
	}
	return e
}

// detectSentinel maps Telegram error codes and descriptions to sentinel
// errors. Description matching takes priority over the HTTP status code.
func detectSentinel(code int, desc string) error {
	descLower := strings.ToLower(desc)
	switch {
	case strings.Contains(descLower, "chat not found"):
		return ErrChatNotFound
	case strings.Contains(descLower, "bot was blocked"):
		return ErrBotBlocked
	}

	switch code {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 429:
		return ErrTooManyRequests
	}

	return nil
}

// HTTPError is a non-success HTTP status with no valid API envelope.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("tgwire: unexpected http status %d", e.StatusCode)
}
