package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// SpyConnector records every exchange and delegates to a reply function.
// It is safe for concurrent callers.
type SpyConnector struct {
	mu       sync.Mutex
	requests []*wire.Request
	tokens   []tg.SecretToken
	reply    func(ctx context.Context, req *wire.Request) (*wire.Response, error)
}

// NewSpyConnector creates a spy with a custom reply function.
func NewSpyConnector(reply func(ctx context.Context, req *wire.Request) (*wire.Response, error)) *SpyConnector {
	return &SpyConnector{reply: reply}
}

// CannedConnector replies to every exchange with the same status and body.
func CannedConnector(status int, body string) *SpyConnector {
	return NewSpyConnector(func(_ context.Context, _ *wire.Request) (*wire.Response, error) {
		return wire.NewResponse(status, []byte(body)), nil
	})
}

// ErrorConnector fails every exchange with err.
func ErrorConnector(err error) *SpyConnector {
	return NewSpyConnector(func(_ context.Context, _ *wire.Request) (*wire.Response, error) {
		return nil, err
	})
}

// SleepConnector waits d before replying, honoring context cancellation the
// way a real transport does.
func SleepConnector(d time.Duration, status int, body string) *SpyConnector {
	return NewSpyConnector(func(ctx context.Context, _ *wire.Request) (*wire.Response, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
			return wire.NewResponse(status, []byte(body)), nil
		}
	})
}

// ScriptedConnector replies with each scripted reply in turn, then keeps
// repeating the last one.
func ScriptedConnector(replies ...func(ctx context.Context, req *wire.Request) (*wire.Response, error)) *SpyConnector {
	var step int
	var mu sync.Mutex
	return NewSpyConnector(func(ctx context.Context, req *wire.Request) (*wire.Response, error) {
		mu.Lock()
		reply := replies[step]
		if step < len(replies)-1 {
			step++
		}
		mu.Unlock()
		return reply(ctx, req)
	})
}

// Request implements connector.Connector.
func (s *SpyConnector) Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.tokens = append(s.tokens, token)
	s.mu.Unlock()
	return s.reply(ctx, req)
}

// Calls returns the number of exchanges performed.
func (s *SpyConnector) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// RequestAt returns the wire request of the i-th exchange, or nil.
func (s *SpyConnector) RequestAt(i int) *wire.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.requests) {
		return nil
	}
	return s.requests[i]
}

// LastRequest returns the most recent wire request, or nil.
func (s *SpyConnector) LastRequest() *wire.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// LastToken returns the token of the most recent exchange.
func (s *SpyConnector) LastToken() tg.SecretToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tokens) == 0 {
		return ""
	}
	return s.tokens[len(s.tokens)-1]
}

// OKConnector replies with a 200 success envelope around result JSON.
func OKConnector(resultJSON string) *SpyConnector {
	return CannedConnector(http.StatusOK, EnvelopeOK(resultJSON))
}
