package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Encryptor seals short secrets for storage. The additional data is
// authenticated but not stored; Open fails unless the same value is supplied.
type Encryptor interface {
	Seal(plaintext, additional []byte) (string, error)
	Open(sealed string, additional []byte) ([]byte, error)
}

// Versioned prefix so a later key or algorithm rotation can coexist with old values.
const sealedPrefixV1 = "v1:"

// KeySize is the AES-256 key length.
const KeySize = 32

var errShortCiphertext = errors.New("ciphertext too short")

// AESGCMEncryptor implements Encryptor using AES-256-GCM.
type AESGCMEncryptor struct {
	aead cipher.AEAD
}

// NewAESGCMEncryptor constructs an encryptor. Key must be KeySize bytes.
func NewAESGCMEncryptor(key []byte) (*AESGCMEncryptor, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aes-gcm key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCMEncryptor{aead: aead}, nil
}

// DeriveKey turns an operator-supplied secret into a key. A 64-character hex
// string is used as-is; anything else is hashed with SHA-256.
func DeriveKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("encryption key is required")
	}
	if decoded, err := hex.DecodeString(secret); err == nil && len(decoded) == KeySize {
		return decoded, nil
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// IsSealed reports whether s looks like a value produced by Seal.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, sealedPrefixV1)
}

// Seal encrypts plaintext with a random nonce and returns "v1:" + base64(nonce||ciphertext).
func (e *AESGCMEncryptor) Seal(plaintext, additional []byte) (string, error) {
	nonce := make([]byte, e.aead.NonceSize(), e.aead.NonceSize()+len(plaintext)+e.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	out := e.aead.Seal(nonce, nonce, plaintext, additional)
	return sealedPrefixV1 + base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (e *AESGCMEncryptor) Open(sealed string, additional []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		prefix := sealed
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
		return nil, fmt.Errorf("unknown ciphertext version (prefix: %q)", prefix)
	}
	data, err := base64.StdEncoding.DecodeString(sealed[len(sealedPrefixV1):])
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}
	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, errShortCiphertext
	}
	pt, err := e.aead.Open(nil, data[:nonceSize], data[nonceSize:], additional)
	if err != nil {
		return nil, fmt.Errorf("open ciphertext: %w", err)
	}
	return pt, nil
}
