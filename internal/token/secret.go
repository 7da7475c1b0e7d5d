package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateSecret reads the signing secret from path, generating and
// persisting a fresh 256-bit key on first use. The file is owner-only (0600)
// and must live outside any tree that is wiped on restart.
//
// Concurrent first use is safe: creation is O_EXCL, and on a lost race the
// winner's secret is re-read.
func LoadOrCreateSecret(path string) ([]byte, error) {
	if secret, err := readSecretFile(path); err == nil {
		return secret, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	secret := []byte(hex.EncodeToString(raw))

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create secret dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		// Another process initialized first; use its key. An empty leftover
		// file is rewritten in place.
		if existing, readErr := readSecretFile(path); readErr == nil {
			return existing, nil
		}
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	}
	if err != nil {
		return nil, fmt.Errorf("create secret file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(secret); err != nil {
		return nil, fmt.Errorf("write secret file: %w", err)
	}
	return secret, nil
}

func readSecretFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return nil, os.ErrNotExist
	}
	return []byte(secret), nil
}
