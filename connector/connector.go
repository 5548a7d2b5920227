// Package connector provides the transport-neutral HTTP capability the facade
// dispatches through, plus the production implementations: a hardened net/http
// connector, a resty-backed alternative, and an opt-in circuit breaker
// decorator.
package connector

import (
	"context"

	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// Connector performs one HTTP exchange against the Bot API.
//
// Implementations must honor ctx cancellation at every blocking point, must
// not retain req after returning, must never place the raw token in logs or
// error text, and must be safe for concurrent callers.
type Connector interface {
	Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error)
}

// Func adapts a function to the Connector interface.
type Func func(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error)

// Request calls f.
func (f Func) Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error) {
	return f(ctx, token, req)
}
