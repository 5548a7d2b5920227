package connector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// BreakerSettings configures the circuit breaker decorator.
type BreakerSettings struct {
	// Name identifies the breaker in state-change logs.
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	// If 0, internal counts never reset in closed state.
	Interval time.Duration

	// Timeout is the duration of the open state before transitioning to half-open.
	Timeout time.Duration

	// ReadyToTrip determines if the breaker should trip based on failure counts.
	// If nil, uses the default (50% failure rate after 3 requests).
	ReadyToTrip func(counts gobreaker.Counts) bool

	// Logger receives state-change events. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultBreakerSettings returns production-ready defaults.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:        "tgwire-connector",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.5
		},
	}
}

// WithBreaker wraps a connector with a circuit breaker. While the breaker is
// open, Request fails fast with gobreaker.ErrOpenState instead of reaching the
// network; the facade surfaces that as a transport failure. The bare facade
// never installs a breaker on its own.
func WithBreaker(inner Connector, settings BreakerSettings) Connector {
	defaults := DefaultBreakerSettings()
	if settings.Name == "" {
		settings.Name = defaults.Name
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = defaults.ReadyToTrip
	}
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*wire.Response](gobreaker.Settings{
		Name:         settings.Name,
		MaxRequests:  settings.MaxRequests,
		Interval:     settings.Interval,
		Timeout:      settings.Timeout,
		ReadyToTrip:  settings.ReadyToTrip,
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &breakerConnector{inner: inner, cb: cb}
}

type breakerConnector struct {
	inner Connector
	cb    *gobreaker.CircuitBreaker[*wire.Response]
}

func (c *breakerConnector) Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error) {
	return c.cb.Execute(func() (*wire.Response, error) {
		return c.inner.Request(ctx, token, req)
	})
}

// isBreakerSuccess decides which errors count as breaker failures. Only the
// connector's transport errors reach this point; cancelled or expired contexts
// are the caller's doing, not service degradation.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
