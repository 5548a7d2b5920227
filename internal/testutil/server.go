package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// MockServer is a mock Telegram Bot API server for connector tests.
type MockServer struct {
	*httptest.Server
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	captures []Capture
}

// Capture is one recorded HTTP request.
type Capture struct {
	Method      string
	Path        string
	ContentType string
	Header      http.Header
	Body        []byte
}

// NewMockServer creates a mock API server, closed automatically when the test
// completes. Unhandled paths get an empty success envelope.
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	m := &MockServer{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	m.mu.Lock()
	m.captures = append(m.captures, Capture{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		Body:        body,
	})
	handler, exists := m.handlers[r.URL.Path]
	m.mu.Unlock()

	if exists {
		handler(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, EnvelopeOK("{}"))
}

// On registers a handler for a bot API path, e.g. "/bot<token>/getMe".
func (m *MockServer) On(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// OnMethodPath registers a handler for an API method under the given token.
func (m *MockServer) OnMethodPath(token, method string, handler http.HandlerFunc) {
	m.On("/bot"+token+"/"+method, handler)
}

// Reply registers a fixed body reply for an API method under the given token.
func (m *MockServer) Reply(token, method string, status int, body string) {
	m.OnMethodPath(token, method, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// CaptureCount returns the number of captured requests.
func (m *MockServer) CaptureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.captures)
}

// LastCapture returns the most recent captured request, or nil.
func (m *MockServer) LastCapture() *Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.captures) == 0 {
		return nil
	}
	return &m.captures[len(m.captures)-1]
}

// BodyMap decodes the capture body as JSON.
func (c *Capture) BodyMap(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(c.Body, &out); err != nil {
		t.Fatalf("decode capture body: %v", err)
	}
	return out
}

// FormValue parses the capture body as a url-encoded form and returns one value.
func (c *Capture) FormValue(t *testing.T, key string) string {
	t.Helper()
	values, err := url.ParseQuery(string(c.Body))
	if err != nil {
		t.Fatalf("parse form body: %v", err)
	}
	return values.Get(key)
}
