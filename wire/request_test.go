package wire

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGet(t *testing.T) {
	req := NewGet("getMe")
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "getMe", req.Path)
	assert.Equal(t, Empty{}, req.Body)
	assert.Empty(t, req.Body.ContentType())
}

func TestNewForm(t *testing.T) {
	req := NewForm("sendMessage", Form{"chat_id": "1", "text": "hi"})
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Body.ContentType())
}

func TestFormEncode(t *testing.T) {
	form := Form{
		"chat_id": "42",
		"text":    "hello world & more",
	}

	values, err := url.ParseQuery(form.Encode())
	require.NoError(t, err)
	assert.Equal(t, "42", values.Get("chat_id"))
	assert.Equal(t, "hello world & more", values.Get("text"))
}

func TestFormEncodeDeterministic(t *testing.T) {
	form := Form{"b": "2", "a": "1", "c": "3"}
	// url.Values.Encode sorts keys, so equal forms encode identically.
	assert.Equal(t, "a=1&b=2&c=3", form.Encode())
}

func TestNewMultipart(t *testing.T) {
	mp := &Multipart{Fields: map[string]string{"chat_id": "1"}}
	req := NewMultipart("sendDocument", mp)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Same(t, mp, req.Body)
}
