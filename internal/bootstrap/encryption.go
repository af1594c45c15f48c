package bootstrap

import (
	"log/slog"

	"github.com/target/deptdash/internal/cryptoutil"
)

// NewTokenEncryptor creates an AES-GCM encryptor from the configured key.
// It returns nil when no key is configured; persistent backends then store
// tokens in plaintext and a warning is logged.
func NewTokenEncryptor(key string, logger *slog.Logger) (*cryptoutil.AESGCMEncryptor, error) {
	if key == "" {
		if logger != nil {
			logger.Warn("session encryption key is empty, tokens are stored in plaintext")
		}
		return nil, nil //nolint:nilnil // no key means no encryption
	}

	keyBytes, err := cryptoutil.DeriveKey(key)
	if err != nil {
		return nil, err
	}
	return cryptoutil.NewAESGCMEncryptor(keyBytes)
}
