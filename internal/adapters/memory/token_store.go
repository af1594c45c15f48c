// Package memory provides an in-process token backend for tests and
// short-lived runs where nothing needs to survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/target/deptdash/internal/ports"
)

var _ ports.TokenBackend = (*TokenStore)(nil)

// TokenStore keeps tokens in a map guarded by a mutex.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]string)}
}

func (s *TokenStore) Load(_ context.Context, profile string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[profile], nil
}

func (s *TokenStore) Save(_ context.Context, profile, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[profile] = token
	return nil
}

func (s *TokenStore) Delete(_ context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, profile)
	return nil
}

// Len returns the number of stored tokens.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
