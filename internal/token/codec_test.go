package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/internal/token"
)

func TestEncodeProducesThreeSegments(t *testing.T) {
	secret := []byte("codec-secret")

	tok, err := token.Encode(token.Claims{"sub": 42, "username": "204"}, secret)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	assert.Len(t, parts, 3)
	assert.NotContains(t, tok, "=", "segments must not be padded")
}

func TestDecodeRoundTrip(t *testing.T) {
	secret := []byte("codec-secret")

	tok, err := token.Encode(token.Claims{"sub": float64(42), "username": "204", "role": "user"}, secret)
	require.NoError(t, err)

	decoded, err := token.Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, "HS256", decoded.Header["alg"])
	assert.Equal(t, "JWT", decoded.Header["typ"])
	assert.Equal(t, float64(42), decoded.Claims["sub"])
	assert.Equal(t, "204", decoded.Claims["username"])
	assert.Equal(t, "user", decoded.Claims["role"])
	assert.True(t, strings.HasPrefix(tok, decoded.SignedMessage+"."))
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "aaaa.bbbb"},
		{"four segments", "a.b.c.d"},
		{"invalid base64", "!!!.###.$$$"},
		{"payload not an object", "e30.WyJub3QiLCJhbiIsIm9iamVjdCJd.c2ln"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := token.Decode(tc.token)
			assert.ErrorIs(t, err, token.ErrMalformedToken)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	secret := []byte("codec-secret")

	tok, err := token.Encode(token.Claims{"sub": 1}, secret)
	require.NoError(t, err)

	decoded, err := token.Decode(tok)
	require.NoError(t, err)

	t.Run("matching secret verifies", func(t *testing.T) {
		assert.True(t, token.VerifySignature(decoded.SignedMessage, decoded.Signature, secret))
	})

	t.Run("different secret fails", func(t *testing.T) {
		assert.False(t, token.VerifySignature(decoded.SignedMessage, decoded.Signature, []byte("other-secret")))
	})

	t.Run("tampered message fails", func(t *testing.T) {
		assert.False(t, token.VerifySignature(decoded.SignedMessage+"x", decoded.Signature, secret))
	})

	t.Run("truncated signature fails", func(t *testing.T) {
		assert.False(t, token.VerifySignature(decoded.SignedMessage, decoded.Signature[:len(decoded.Signature)-1], secret))
	})
}
