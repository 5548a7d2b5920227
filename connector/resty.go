package connector

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/prilive-com/tgwire/internal/scrub"
	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

// RestyConnector is an alternative transport backend built on go-resty.
// Retries stay disabled so every Request call maps to exactly one exchange.
type RestyConnector struct {
	client  *resty.Client
	baseURL string
}

// RestyOption configures the RestyConnector.
type RestyOption func(*RestyConnector)

// WithRestyClient sets a custom resty client.
func WithRestyClient(client *resty.Client) RestyOption {
	return func(c *RestyConnector) {
		c.client = client
	}
}

// WithRestyBaseURL sets the API base URL (useful for testing).
func WithRestyBaseURL(url string) RestyOption {
	return func(c *RestyConnector) {
		c.baseURL = url
	}
}

// NewResty creates a resty-backed connector. It performs no I/O.
func NewResty(opts ...RestyOption) *RestyConnector {
	c := &RestyConnector{
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = resty.NewWithClient(defaultHTTPClient())
	}
	return c
}

// Request performs the exchange described by req.
func (c *RestyConnector) Request(ctx context.Context, token tg.SecretToken, req *wire.Request) (*wire.Response, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, token.Value(), req.Path)

	r := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")

	switch body := req.Body.(type) {
	case wire.Empty:
		// no body
	case wire.Form:
		r.SetFormData(body)
	case *wire.Multipart:
		r.SetFormData(body.Fields)
		for _, part := range body.Parts {
			r.SetFileReader(part.Field, part.FileName, part.Reader)
		}
	default:
		return nil, fmt.Errorf("unsupported wire body %T", req.Body)
	}

	resp, err := r.Execute(req.Method, url)
	if err != nil {
		return nil, scrub.TokenFromError(err, token)
	}

	return wire.NewResponse(resp.StatusCode(), resp.Body()), nil
}
