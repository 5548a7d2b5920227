package tg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"

func TestSecretToken_Redaction(t *testing.T) {
	token := SecretToken(plainToken)

	assert.Equal(t, "[REDACTED]", token.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", token))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", token))
	assert.Equal(t, `tg.SecretToken("[REDACTED]")`, fmt.Sprintf("%#v", token))
	assert.Equal(t, plainToken, token.Value())
}

func TestSecretToken_SlogRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("configured", "token", SecretToken(plainToken))

	assert.NotContains(t, buf.String(), plainToken)
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestSecretToken_JSONRedaction(t *testing.T) {
	out, err := json.Marshal(struct {
		Token SecretToken `json:"token"`
	}{Token: SecretToken(plainToken)})
	require.NoError(t, err)

	assert.NotContains(t, string(out), plainToken)
	assert.Contains(t, string(out), "[REDACTED]")
}

func TestSecretToken_IsEmpty(t *testing.T) {
	assert.True(t, SecretToken("").IsEmpty())
	assert.False(t, SecretToken(plainToken).IsEmpty())
}
