package connector_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgwire/connector"
	"github.com/prilive-com/tgwire/internal/testutil"
	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConnector(t *testing.T) (*connector.HTTPConnector, *testutil.MockServer) {
	t.Helper()
	server := testutil.NewMockServer(t)
	conn := connector.New(
		connector.WithBaseURL(server.URL),
		connector.WithLogger(discardLogger()),
	)
	return conn, server
}

func TestHTTPConnector_FormExchange(t *testing.T) {
	conn, server := newTestConnector(t)
	server.Reply(testutil.TestToken, "sendMessage", http.StatusOK,
		testutil.EnvelopeOK(testutil.MessageJSON(5, testutil.TestChatID, "hello")))

	req, err := tg.SendMessage{ChatID: testutil.TestChatID, Text: "hello"}.Serialize()
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msg, err := tg.DecodeResult[tg.Message](resp)
	require.NoError(t, err)
	assert.Equal(t, 5, msg.MessageID)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	assert.Equal(t, http.MethodPost, capture.Method)
	assert.Equal(t, "/bot"+testutil.TestToken+"/sendMessage", capture.Path)
	assert.Equal(t, "application/x-www-form-urlencoded", capture.ContentType)
	assert.Equal(t, "application/json", capture.Header.Get("Accept"))
	assert.Equal(t, "123456789", capture.FormValue(t, "chat_id"))
	assert.Equal(t, "hello", capture.FormValue(t, "text"))
}

func TestHTTPConnector_EmptyBodyIsGet(t *testing.T) {
	conn, server := newTestConnector(t)
	server.Reply(testutil.TestToken, "getMe", http.StatusOK, testutil.EnvelopeOK(testutil.UserJSON))

	resp, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), wire.NewGet("getMe"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	assert.Equal(t, http.MethodGet, capture.Method)
	assert.Empty(t, capture.Body)
}

func TestHTTPConnector_MultipartUpload(t *testing.T) {
	conn, server := newTestConnector(t)
	server.Reply(testutil.TestToken, "sendDocument", http.StatusOK,
		testutil.EnvelopeOK(testutil.MessageJSON(6, testutil.TestChatID, "")))

	req, err := tg.SendDocument{
		ChatID: testutil.TestChatID,
		Document: tg.InputFile{
			FileName: "report.txt",
			Reader:   strings.NewReader("file contents"),
		},
		Caption: "monthly report",
	}.Serialize()
	require.NoError(t, err)

	_, err = conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), req)
	require.NoError(t, err)

	capture := server.LastCapture()
	require.NotNil(t, capture)

	mediaType, params, err := mime.ParseMediaType(capture.ContentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(capture.Body), params["boundary"])
	got := map[string]string{}
	var fileName string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		got[part.FormName()] = string(data)
		if part.FormName() == "document" {
			fileName = part.FileName()
		}
	}

	assert.Equal(t, "file contents", got["document"])
	assert.Equal(t, "report.txt", fileName)
	assert.Equal(t, "123456789", got["chat_id"])
	assert.Equal(t, "monthly report", got["caption"])
}

func TestHTTPConnector_ResponseSizeCap(t *testing.T) {
	server := testutil.NewMockServer(t)
	conn := connector.New(
		connector.WithBaseURL(server.URL),
		connector.WithLogger(discardLogger()),
		connector.WithMaxResponseSize(16),
	)
	server.Reply(testutil.TestToken, "getMe", http.StatusOK,
		testutil.EnvelopeOK(testutil.UserJSON))

	_, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), wire.NewGet("getMe"))
	assert.ErrorIs(t, err, connector.ErrResponseTooLarge)
}

func TestHTTPConnector_TokenScrubbedFromErrors(t *testing.T) {
	// Nothing listens here; the dial error message embeds the request URL.
	conn := connector.New(
		connector.WithBaseURL("http://127.0.0.1:1"),
		connector.WithLogger(discardLogger()),
	)

	_, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), wire.NewGet("getMe"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testutil.TestToken)
	assert.Contains(t, err.Error(), "[REDACTED]")
}

func TestHTTPConnector_ContextCancelled(t *testing.T) {
	conn, server := newTestConnector(t)
	server.Reply(testutil.TestToken, "getMe", http.StatusOK, testutil.EnvelopeOK(testutil.UserJSON))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conn.Request(ctx, tg.SecretToken(testutil.TestToken), wire.NewGet("getMe"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
