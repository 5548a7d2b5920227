package tgwire

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prilive-com/tgwire/tg"
)

// ErrStreamRunning is returned by Start when the stream is already polling.
var ErrStreamRunning = errors.New("tgwire: update stream already running")

// UpdateStream is a lazy, restartable sequence of incoming updates built on
// long polling through the facade. Every poll is one SendTimeout dispatch of
// tg.GetUpdates on the stream's own clone of the handle.
type UpdateStream struct {
	api    *API
	logger *slog.Logger

	timeout        int
	limit          int
	maxErrors      int
	allowedUpdates []string
	deleteWebhook  bool

	retryInitialDelay  time.Duration
	retryMaxDelay      time.Duration
	retryBackoffFactor float64

	updates chan tg.Update

	running           atomic.Bool
	offset            atomic.Int64
	consecutiveErrors atomic.Int32
	stopped           atomic.Bool
	mu                sync.Mutex // protects stopCh recreation
	stopCh            chan struct{}
	wg                sync.WaitGroup
}

// StreamOption configures an UpdateStream.
type StreamOption func(*UpdateStream)

// WithPollTimeout sets the long poll duration in seconds.
func WithPollTimeout(seconds int) StreamOption {
	return func(s *UpdateStream) {
		s.timeout = seconds
	}
}

// WithPollLimit sets the maximum batch size per poll.
func WithPollLimit(limit int) StreamOption {
	return func(s *UpdateStream) {
		s.limit = limit
	}
}

// WithMaxErrors sets the number of consecutive poll errors tolerated before
// the stream stops itself. Zero means poll forever.
func WithMaxErrors(max int) StreamOption {
	return func(s *UpdateStream) {
		s.maxErrors = max
	}
}

// WithAllowedUpdates filters the update types delivered by the server.
func WithAllowedUpdates(types ...string) StreamOption {
	return func(s *UpdateStream) {
		s.allowedUpdates = types
	}
}

// WithBufferSize sets the updates channel buffer size.
func WithBufferSize(size int) StreamOption {
	return func(s *UpdateStream) {
		s.updates = make(chan tg.Update, size)
	}
}

// WithDeleteWebhook removes any registered webhook before the first poll;
// Telegram rejects getUpdates while a webhook is active.
func WithDeleteWebhook(delete bool) StreamOption {
	return func(s *UpdateStream) {
		s.deleteWebhook = delete
	}
}

// WithStreamLogger sets a custom logger.
func WithStreamLogger(logger *slog.Logger) StreamOption {
	return func(s *UpdateStream) {
		s.logger = logger
	}
}

// WithRetryConfig sets the exponential backoff parameters used after poll errors.
func WithRetryConfig(initial, max time.Duration, factor float64) StreamOption {
	return func(s *UpdateStream) {
		if initial > 0 {
			s.retryInitialDelay = initial
		}
		if max > 0 {
			s.retryMaxDelay = max
		}
		if factor > 1.0 {
			s.retryBackoffFactor = factor
		}
	}
}

// Stream creates an update stream over a clone of the handle. The stream is
// lazy: no polling happens until Start.
func (a *API) Stream(opts ...StreamOption) *UpdateStream {
	s := &UpdateStream{
		api:                a.Clone(),
		timeout:            30,
		limit:              100,
		maxErrors:          10,
		retryInitialDelay:  time.Second,
		retryMaxDelay:      30 * time.Second,
		retryBackoffFactor: 2.0,
		stopCh:             make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.updates == nil {
		s.updates = make(chan tg.Update, 100)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Updates returns the channel updates are delivered on.
func (s *UpdateStream) Updates() <-chan tg.Update {
	return s.updates
}

// Start begins polling. The stream can be started again after Stop.
func (s *UpdateStream) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrStreamRunning
	}

	s.mu.Lock()
	if s.stopped.Load() {
		s.stopCh = make(chan struct{})
		s.stopped.Store(false)
	}
	s.mu.Unlock()

	if s.deleteWebhook {
		s.logger.Info("deleting existing webhook")
		if _, err := Send(ctx, s.api, tg.DeleteWebhook{}); err != nil {
			s.running.Store(false)
			return fmt.Errorf("delete webhook: %w", err)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pollLoop(ctx)
	}()

	s.logger.Info("update stream started",
		"timeout", s.timeout,
		"limit", s.limit,
		"max_errors", s.maxErrors,
	)
	return nil
}

// Stop halts polling and waits for the poll goroutine to exit. Updates already
// delivered to the channel remain readable.
func (s *UpdateStream) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}

	s.mu.Lock()
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.stopped.Store(true)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("update stream stopped")
}

// Running reports whether the stream is actively polling.
func (s *UpdateStream) Running() bool {
	return s.running.Load()
}

// IsHealthy reports whether the stream is polling and below its error cap.
func (s *UpdateStream) IsHealthy() bool {
	if s.maxErrors == 0 {
		return s.running.Load()
	}
	return s.running.Load() && int(s.consecutiveErrors.Load()) < s.maxErrors
}

// Offset returns the next update offset that will be requested.
func (s *UpdateStream) Offset() int64 {
	return s.offset.Load()
}

// ConsecutiveErrors returns the current poll error count.
func (s *UpdateStream) ConsecutiveErrors() int32 {
	return s.consecutiveErrors.Load()
}

func (s *UpdateStream) pollLoop(ctx context.Context) {
	defer s.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("polling stopped: context cancelled")
			return
		case <-s.stopCh:
			s.logger.Info("polling stopped: stop signal")
			return
		default:
		}

		updates, err := s.fetch(ctx)
		if err != nil {
			errCount := s.consecutiveErrors.Add(1)
			backoff := s.calculateBackoff(errCount)
			s.logger.Error("fetch updates failed",
				"error", err,
				"consecutive_errors", errCount,
				"retry_delay", backoff,
			)

			if s.maxErrors > 0 && int(errCount) >= s.maxErrors {
				s.logger.Error("max consecutive errors exceeded", "max_errors", s.maxErrors)
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-time.After(backoff):
				continue
			}
		}

		s.consecutiveErrors.Store(0)

		// Advance the offset only after successful channel delivery, so
		// undelivered updates are fetched again after a restart.
		for _, update := range updates {
			select {
			case s.updates <- update:
				if update.UpdateID >= s.offset.Load() {
					s.offset.Store(update.UpdateID + 1)
				}
				s.logger.Debug("update delivered", "update_id", update.UpdateID)
			case <-ctx.Done():
				s.logger.Info("stopping update delivery: context cancelled")
				return
			case <-s.stopCh:
				s.logger.Info("stopping update delivery: stop signal")
				return
			}
		}
	}
}

func (s *UpdateStream) fetch(ctx context.Context) ([]tg.Update, error) {
	req := tg.GetUpdates{
		Offset:         s.offset.Load(),
		Limit:          s.limit,
		Timeout:        s.timeout,
		AllowedUpdates: s.allowedUpdates,
	}

	// The server holds the long poll open for up to s.timeout seconds;
	// the extra headroom covers the round trip. An expired deadline is an
	// empty batch, not an error.
	deadline := time.Duration(s.timeout+10) * time.Second
	batch, err := SendTimeout(ctx, s.api, req, deadline)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return *batch, nil
}

func (s *UpdateStream) calculateBackoff(attempt int32) time.Duration {
	delay := float64(s.retryInitialDelay) * math.Pow(s.retryBackoffFactor, float64(attempt-1))
	if delay > float64(s.retryMaxDelay) {
		delay = float64(s.retryMaxDelay)
	}

	// Crypto jitter, 0-25%.
	jitterRange := int64(delay * 0.25)
	if jitterRange > 0 {
		jitter, err := rand.Int(rand.Reader, big.NewInt(jitterRange))
		if err == nil {
			delay += float64(jitter.Int64())
		}
	}

	return time.Duration(delay)
}
