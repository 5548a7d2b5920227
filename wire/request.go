// Package wire defines the transport-level request and response payloads
// exchanged between the typed schema layer and a connector. Values are
// schema-agnostic: a wire.Request carries everything a connector needs for one
// HTTP exchange and keeps no reference to the typed request that produced it.
package wire

import (
	"io"
	"net/http"
	"net/url"
)

// Request describes one HTTP exchange against the Bot API.
// The Path is relative to the per-token API root ("getMe", "sendMessage", ...);
// URL composition, including the token segment, is the connector's job.
//
// A Request is immutable once built and one-shot: multipart file readers are
// consumed by a single exchange and must not be reused.
type Request struct {
	Method string
	Path   string
	Body   Body
}

// Body is the request payload variant. Exactly three implementations exist:
// Empty, Form and Multipart.
type Body interface {
	// ContentType returns the Content-Type header value for this body,
	// or "" when no body is sent.
	ContentType() string

	body()
}

// NewGet builds a bodiless GET request for the given API method path.
func NewGet(path string) *Request {
	return &Request{Method: http.MethodGet, Path: path, Body: Empty{}}
}

// NewForm builds a POST request with a url-encoded form body.
func NewForm(path string, form Form) *Request {
	return &Request{Method: http.MethodPost, Path: path, Body: form}
}

// NewMultipart builds a POST request with a multipart/form-data body.
func NewMultipart(path string, mp *Multipart) *Request {
	return &Request{Method: http.MethodPost, Path: path, Body: mp}
}

// Empty is the no-body variant.
type Empty struct{}

func (Empty) ContentType() string { return "" }
func (Empty) body()               {}

// Form is a url-encoded parameter set.
type Form map[string]string

func (Form) ContentType() string { return "application/x-www-form-urlencoded" }
func (Form) body()               {}

// Encode returns the url-encoded body bytes.
func (f Form) Encode() string {
	values := make(url.Values, len(f))
	for name, value := range f {
		values.Set(name, value)
	}
	return values.Encode()
}

// Part is one file attached to a multipart body. The Reader is drained
// exactly once, when the body is encoded.
type Part struct {
	Field    string // form field name, e.g. "document"
	FileName string
	Reader   io.Reader
}

// Multipart combines string fields with streamed file parts.
type Multipart struct {
	Fields map[string]string
	Parts  []Part
}

// ContentType on Multipart is a placeholder: the real value carries the
// boundary and comes from the Encoder writing the body.
func (*Multipart) ContentType() string { return "multipart/form-data" }
func (*Multipart) body()               {}
