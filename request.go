package tgwire

import (
	"context"
	"fmt"
	"time"

	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// Request is the typed request capability. The type parameter binds a request
// to its response type: Serialize produces a self-contained, one-shot wire
// request, and Deserialize parses the raw reply into the result value.
//
// Go methods cannot introduce type parameters, so dispatch happens through the
// package-level Send and SendTimeout functions rather than methods on API.
type Request[T any] interface {
	Serialize() (*wire.Request, error)
	Deserialize(*wire.Response) (T, error)
}

// Send dispatches a typed request and waits for its typed response.
//
// The sequence is: serialize, exactly one connector exchange, deserialize.
// If serialization fails the connector is never called; if the connector
// fails deserialization is never called. Cancelling ctx propagates into the
// connector's in-flight exchange.
func Send[T any](ctx context.Context, api *API, req Request[T]) (T, error) {
	var zero T
	wireReq, err := req.Serialize()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", tg.ErrSerialize, err)
	}
	return dispatch(ctx, api, req, wireReq)
}

// SendTimeout dispatches a typed request under a deadline of d. A nil result
// with a nil error means the deadline expired before the exchange completed;
// deadline expiry is never an error. A zero duration starts the exchange with
// the deadline already elapsed, so the result is nil unless the exchange was
// somehow already complete.
//
// Only the deadline introduced here maps to the nil result: expiry or
// cancellation of the caller's own ctx surfaces as a transport error.
func SendTimeout[T any](ctx context.Context, api *API, req Request[T], d time.Duration) (*T, error) {
	wireReq, err := req.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tg.ErrSerialize, err)
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	result, err := dispatch(deadlineCtx, api, req, wireReq)
	if err != nil {
		if deadlineCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// dispatch is the single private path all sends funnel through:
// connector exchange, then typed deserialization.
func dispatch[T any](ctx context.Context, api *API, req Request[T], wireReq *wire.Request) (T, error) {
	var zero T
	resp, err := api.exchange(ctx, wireReq)
	if err != nil {
		return zero, err
	}
	result, err := req.Deserialize(resp)
	if err != nil {
		return zero, err
	}
	return result, nil
}
