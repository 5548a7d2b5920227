package tgwire

import (
	"context"
	"fmt"

	"github.com/prilive-com/tgwire/connector"
	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// API is the handle for dispatching typed requests to the Telegram Bot API.
//
// A handle is a shared value: Clone is O(1) and every clone observes the same
// token and connector. The inner record is immutable after construction, so a
// handle may be used from any number of goroutines without locking.
type API struct {
	inner *apiInner
}

type apiInner struct {
	token     tg.SecretToken
	connector connector.Connector
}

// New creates a handle with the default connector. No I/O is performed.
func New(token string) *API {
	return NewWithConnector(token, connector.New())
}

// NewWithConnector creates a handle using the supplied connector. The handle
// assumes ownership of the connector; it must not be mutated afterwards.
func NewWithConnector(token string, c connector.Connector) *API {
	return &API{inner: &apiInner{
		token:     tg.SecretToken(token),
		connector: c,
	}}
}

// Clone returns a second handle sharing the same immutable state.
func (a *API) Clone() *API {
	return &API{inner: a.inner}
}

// exchange performs the single connector call for one dispatch. Transport
// failures are tagged here; deserialization stays with the typed request.
func (a *API) exchange(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	resp, err := a.inner.connector.Request(ctx, a.inner.token, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tg.ErrTransport, err)
	}
	return resp, nil
}
