package token_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/internal/token"
)

func TestLoadOrCreateSecretGeneratesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "secret.key")

	secret, err := token.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, secret, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", string(secret))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrCreateSecretIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.key")

	first, err := token.LoadOrCreateSecret(path)
	require.NoError(t, err)

	second, err := token.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrCreateSecretHonorsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.key")
	require.NoError(t, os.WriteFile(path, []byte("preseeded-secret\n"), 0o600))

	secret, err := token.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, "preseeded-secret", string(secret))
}

func TestLoadOrCreateSecretReplacesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.key")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	secret, err := token.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, secret, 64)
}
