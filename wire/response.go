package wire

// Response is a raw HTTP reply: status plus body bytes, ready for the typed
// deserialize step. Connectors fully read and close the HTTP body before
// returning, so a Response has no pending I/O attached.
type Response struct {
	StatusCode int
	Body       []byte
}

// NewResponse builds a Response from a status code and body bytes.
func NewResponse(status int, body []byte) *Response {
	return &Response{StatusCode: status, Body: body}
}
