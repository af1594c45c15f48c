// Package session owns the bearer token used on every authenticated call to
// the department service.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/target/deptdash/internal/domain/auth"
	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/ports"
)

var (
	_ ports.TokenStore  = (*Store)(nil)
	_ ports.TokenSource = (*Store)(nil)
)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Backend ports.TokenBackend
	Profile string
	Logger  *slog.Logger
}

// Store is the single source of truth for one profile's token.
// It performs no validation of token shape and tracks no expiry; a token is
// valid until the remote service rejects it.
type Store struct {
	backend ports.TokenBackend
	profile string
	logger  *slog.Logger
}

// NewStore constructs a Store bound to a profile.
func NewStore(opts StoreOptions) *Store {
	profile := strings.TrimSpace(opts.Profile)
	if profile == "" {
		profile = domainauth.DefaultProfile
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: opts.Backend,
		profile: profile,
		logger:  logger,
	}
}

// Profile returns the profile key this store is bound to.
func (s *Store) Profile() string { return s.profile }

// SetToken persists token for this profile, replacing any previous token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.backend.Save(ctx, s.profile, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// GetToken returns the current token or "" when none is held.
// Backend failures are logged and reported as an absent token.
func (s *Store) GetToken(ctx context.Context) string {
	token, err := s.backend.Load(ctx, s.profile)
	if err != nil {
		s.logger.WarnContext(ctx, "load token failed",
			"profile", s.profile,
			"error", err)
		return ""
	}
	return token
}

// ClearToken removes the token; subsequent GetToken calls return "".
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.profile); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// RequireToken returns the token or a NotAuthenticated error when none is held.
func (s *Store) RequireToken(ctx context.Context) (string, error) {
	token := s.GetToken(ctx)
	if token == "" {
		return "", apperrors.NotAuthenticated()
	}
	return token, nil
}
