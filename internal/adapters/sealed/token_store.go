// Package sealed encrypts tokens before they reach a persistent backend.
package sealed

import (
	"context"
	"fmt"

	"github.com/target/deptdash/internal/cryptoutil"
	"github.com/target/deptdash/internal/ports"
)

var _ ports.TokenBackend = (*TokenStore)(nil)

// TokenStore wraps a backend so tokens are stored sealed. The profile is bound
// as additional data, so a value copied between profiles does not open.
type TokenStore struct {
	next ports.TokenBackend
	enc  cryptoutil.Encryptor
}

// NewTokenStore wraps next.
func NewTokenStore(next ports.TokenBackend, enc cryptoutil.Encryptor) *TokenStore {
	if next == nil {
		panic("sealed.NewTokenStore: backend is required")
	}
	if enc == nil {
		panic("sealed.NewTokenStore: encryptor is required")
	}
	return &TokenStore{next: next, enc: enc}
}

func (s *TokenStore) Save(ctx context.Context, profile, token string) error {
	sealed, err := s.enc.Seal([]byte(token), []byte(profile))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	return s.next.Save(ctx, profile, sealed)
}

// Load returns plaintext values written before encryption was enabled as-is;
// they are sealed on the next Save.
func (s *TokenStore) Load(ctx context.Context, profile string) (string, error) {
	raw, err := s.next.Load(ctx, profile)
	if err != nil || raw == "" {
		return raw, err
	}
	if !cryptoutil.IsSealed(raw) {
		return raw, nil
	}
	plain, err := s.enc.Open(raw, []byte(profile))
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}
	return string(plain), nil
}

func (s *TokenStore) Delete(ctx context.Context, profile string) error {
	return s.next.Delete(ctx, profile)
}
