package connector_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgwire/connector"
	"github.com/prilive-com/tgwire/internal/testutil"
	"github.com/prilive-com/tgwire/tg"
	"github.com/prilive-com/tgwire/wire"
)

func TestRestyConnector_FormExchange(t *testing.T) {
	server := testutil.NewMockServer(t)
	conn := connector.NewResty(connector.WithRestyBaseURL(server.URL))
	server.Reply(testutil.TestToken, "sendMessage", http.StatusOK,
		testutil.EnvelopeOK(testutil.MessageJSON(9, testutil.TestChatID, "via resty")))

	req, err := tg.SendMessage{ChatID: testutil.TestChatID, Text: "via resty"}.Serialize()
	require.NoError(t, err)

	resp, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msg, err := tg.DecodeResult[tg.Message](resp)
	require.NoError(t, err)
	assert.Equal(t, 9, msg.MessageID)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	assert.Equal(t, "/bot"+testutil.TestToken+"/sendMessage", capture.Path)
	assert.Equal(t, "via resty", capture.FormValue(t, "text"))
}

func TestRestyConnector_EmptyBody(t *testing.T) {
	server := testutil.NewMockServer(t)
	conn := connector.NewResty(connector.WithRestyBaseURL(server.URL))
	server.Reply(testutil.TestToken, "getMe", http.StatusOK, testutil.EnvelopeOK(testutil.UserJSON))

	resp, err := conn.Request(context.Background(), tg.SecretToken(testutil.TestToken), wire.NewGet("getMe"))
	require.NoError(t, err)

	user, err := tg.DecodeResult[tg.User](resp)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestUser(), user)

	capture := server.LastCapture()
	require.NotNil(t, capture)
	assert.Equal(t, http.MethodGet, capture.Method)
}
