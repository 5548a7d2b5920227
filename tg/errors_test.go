package tg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError_SentinelDetection(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		description string
		want        error
	}{
		{"unauthorized", 401, "Unauthorized", ErrUnauthorized},
		{"forbidden", 403, "Forbidden: bots can't send messages to bots", ErrForbidden},
		{"not found", 404, "Not Found", ErrNotFound},
		{"rate limited", 429, "Too Many Requests: retry after 5", ErrTooManyRequests},
		{"chat not found wins over code", 400, "Bad Request: chat not found", ErrChatNotFound},
		{"bot blocked wins over code", 403, "Forbidden: bot was blocked by the user", ErrBotBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.code, tt.description, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAPIError_UnknownCodeHasNoSentinel(t *testing.T) {
	err := NewAPIError(400, "Bad Request: message text is empty", nil)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrChatNotFound)
	assert.Nil(t, errors.Unwrap(err))
}

func TestNewAPIError_RetryAfter(t *testing.T) {
	err := NewAPIError(429, "Too Many Requests: retry after 5", &ResponseParameters{RetryAfter: 5})
	assert.Equal(t, 5*time.Second, err.RetryAfter)
	assert.Contains(t, err.Error(), "retry_after=5s")
}

func TestAPIError_ErrorsAs(t *testing.T) {
	var wrapped error = NewAPIError(401, "Unauthorized", nil)

	var apiErr *APIError
	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, 401, apiErr.Code)
	assert.Equal(t, "Unauthorized", apiErr.Description)
}

func TestHTTPError_Message(t *testing.T) {
	err := &HTTPError{StatusCode: 502}
	assert.Contains(t, err.Error(), "502")
}
