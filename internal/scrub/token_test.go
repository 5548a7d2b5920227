package scrub

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/tgwire/tg"
)

func TestTokenFromError_Redacts(t *testing.T) {
	token := tg.SecretToken("123:SECRET")
	err := fmt.Errorf(`Post "https://api.telegram.org/bot123:SECRET/sendMessage": connection refused`)

	scrubbed := TokenFromError(err, token)
	require.Error(t, scrubbed)
	assert.NotContains(t, scrubbed.Error(), "123:SECRET")
	assert.Contains(t, scrubbed.Error(), "[REDACTED]")
}

func TestTokenFromError_PreservesChain(t *testing.T) {
	token := tg.SecretToken("123:SECRET")
	root := errors.New("connection refused")
	err := fmt.Errorf("dial bot123:SECRET: %w", root)

	scrubbed := TokenFromError(err, token)
	assert.ErrorIs(t, scrubbed, root)
}

func TestTokenFromError_NoTokenInMessage(t *testing.T) {
	err := errors.New("timeout")
	assert.Same(t, err, TokenFromError(err, tg.SecretToken("123:SECRET")))
}

func TestTokenFromError_NilError(t *testing.T) {
	assert.NoError(t, TokenFromError(nil, tg.SecretToken("123:SECRET")))
}

func TestTokenFromError_EmptyToken(t *testing.T) {
	err := errors.New("something failed")
	assert.Same(t, err, TokenFromError(err, tg.SecretToken("")))
}
