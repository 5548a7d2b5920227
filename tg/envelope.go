package tg

import (
	"encoding/json"
	"fmt"

	"github.com/prilive-com/tgwire/wire"
)

// envelope is the standard Bot API response wrapper.
type envelope struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// DecodeResult parses a wire response into a typed result. All Deserialize
// implementations in this package funnel through it. Failures map onto the
// taxonomy: a body that is not an envelope on a non-2xx status is an
// *HTTPError, a well-formed error envelope is an *APIError, and anything else
// unparseable wraps ErrDeserialize.
func DecodeResult[T any](resp *wire.Response) (T, error) {
	var zero T

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return zero, &HTTPError{StatusCode: resp.StatusCode}
		}
		return zero, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}

	if !env.OK {
		return zero, NewAPIError(env.ErrorCode, env.Description, env.Parameters)
	}

	var result T
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	return result, nil
}
