package redis

// Package redis provides Redis-based adapters for the dashboard.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/target/deptdash/internal/ports"
)

// DefaultTokenPrefix namespaces token keys.
const DefaultTokenPrefix = "deptdash:token:"

var _ ports.TokenBackend = (*TokenStore)(nil)

// TokenStore is a Redis-based token backend for the dashboard server.
// Keys carry no TTL: tokens have no local expiry and live until logout or
// until the remote service rejects them.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewTokenStore creates a new Redis-based token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: DefaultTokenPrefix,
	}
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultTokenPrefix
	}
	return &TokenStore{
		client: client,
		prefix: prefix,
	}
}

func (s *TokenStore) Save(ctx context.Context, profile, token string) error {
	if profile == "" {
		return errors.New("profile cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+profile, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Load(ctx context.Context, profile string) (string, error) {
	if profile == "" {
		return "", nil
	}

	token, err := s.client.Get(ctx, s.prefix+profile).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Delete(ctx context.Context, profile string) error {
	if profile == "" {
		return nil // Nothing to delete
	}
	if err := s.client.Del(ctx, s.prefix+profile).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
