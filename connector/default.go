package connector

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prilive-com/tgwire/internal/scrub"
	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

const (
	defaultBaseURL  = "https://api.telegram.org"
	maxResponseSize = 10 << 20 // 10MB
)

// ErrResponseTooLarge is returned when a response body exceeds the configured cap.
var ErrResponseTooLarge = errors.New("tgwire: response too large")

// HTTPConnector is the default connector: one HTTP exchange per Request call
// over a hardened net/http client. It holds no per-request state and is safe
// for concurrent callers.
type HTTPConnector struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
	maxBody int64
}

// Option configures the HTTPConnector.
type Option func(*HTTPConnector)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPConnector) {
		c.client = client
	}
}

// WithBaseURL sets the API base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *HTTPConnector) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithLogger sets a custom logger. Only exchange metadata is logged; the
// token never is.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPConnector) {
		c.logger = logger
	}
}

// WithMaxResponseSize caps the response body size in bytes.
func WithMaxResponseSize(n int64) Option {
	return func(c *HTTPConnector) {
		c.maxBody = n
	}
}

// New creates the default connector. It performs no I/O.
func New(opts ...Option) *HTTPConnector {
	c := &HTTPConnector{
		baseURL: defaultBaseURL,
		maxBody: maxResponseSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = defaultHTTPClient()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		// No overall timeout: getUpdates long polls are held open by the
		// server; per-call deadlines come from the caller's context.
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			TLSHandshakeTimeout: 10 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		},
	}
}

// Request performs the exchange described by req.
func (c *HTTPConnector) Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error) {
	httpReq, err := c.newHTTPRequest(ctx, token, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, scrub.TokenFromError(err, token)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Read maxBody+1 to detect overflow without a false positive.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, scrub.TokenFromError(err, token)
	}
	if int64(len(body)) > c.maxBody {
		return nil, ErrResponseTooLarge
	}

	c.logger.Debug("exchange complete",
		"path", req.Path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)

	return wire.NewResponse(resp.StatusCode, body), nil
}

func (c *HTTPConnector) newHTTPRequest(ctx context.Context, token tg.SecretToken, req *wire.Request) (*http.Request, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, token.Value(), req.Path)

	switch body := req.Body.(type) {
	case wire.Empty:
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, nil)
		if err != nil {
			return nil, scrub.TokenFromError(err, token)
		}
		return httpReq, nil

	case wire.Form:
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, strings.NewReader(body.Encode()))
		if err != nil {
			return nil, scrub.TokenFromError(err, token)
		}
		httpReq.Header.Set("Content-Type", body.ContentType())
		return httpReq, nil

	case *wire.Multipart:
		// Stream the multipart body through a pipe so file parts are
		// never buffered whole in memory.
		pr, pw := io.Pipe()
		encoder := wire.NewEncoder(pw)
		contentType := encoder.ContentType()

		go func() {
			if err := encoder.Encode(body); err != nil {
				pw.CloseWithError(fmt.Errorf("encode multipart body: %w", err))
				return
			}
			if err := encoder.Close(); err != nil {
				pw.CloseWithError(fmt.Errorf("close multipart body: %w", err))
				return
			}
			pw.Close()
		}()

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, pr)
		if err != nil {
			pr.Close()
			return nil, scrub.TokenFromError(err, token)
		}
		httpReq.Header.Set("Content-Type", contentType)
		return httpReq, nil

	default:
		return nil, fmt.Errorf("unsupported wire body %T", req.Body)
	}
}
