// Package postgres provides a PostgreSQL token backend so several dashboard
// instances can share one set of profile tokens.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/ports"
)

var _ ports.TokenBackend = (*TokenStore)(nil)

// TokenStore persists one token per profile in the dashboard_tokens table.
// The table is created by the migrate package.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore wraps an open database handle.
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Load(ctx context.Context, profile string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM dashboard_tokens WHERE profile = $1`, profile,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", apperrors.MapDBError(err))
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, profile, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dashboard_tokens (profile, token, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile) DO UPDATE
		SET token = EXCLUDED.token, updated_at = EXCLUDED.updated_at`,
		profile, token,
	)
	if err != nil {
		return fmt.Errorf("save token: %w", apperrors.MapDBError(err))
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, profile string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dashboard_tokens WHERE profile = $1`, profile); err != nil {
		return fmt.Errorf("delete token: %w", apperrors.MapDBError(err))
	}
	return nil
}
