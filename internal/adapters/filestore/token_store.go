// Package filestore persists tokens as small JSON files in a state directory,
// one file per profile, so a token survives process restarts.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/ports"
)

var _ ports.TokenBackend = (*TokenStore)(nil)

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,127}$`)

type tokenFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// TokenStore stores tokens under dir as <profile>.json with 0600 permissions.
type TokenStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewTokenStore creates the state directory if needed and returns a store rooted at it.
func NewTokenStore(dir string) (*TokenStore, error) {
	if dir == "" {
		return nil, errors.New("token state directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create token directory: %w", err)
	}
	return &TokenStore{dir: dir, now: time.Now}, nil
}

// Dir returns the state directory.
func (s *TokenStore) Dir() string { return s.dir }

func (s *TokenStore) Load(_ context.Context, profile string) (string, error) {
	path, err := s.pathFor(profile)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("decode token file %s: %w", filepath.Base(path), err)
	}
	return tf.Token, nil
}

func (s *TokenStore) Save(_ context.Context, profile, token string) error {
	path, err := s.pathFor(profile)
	if err != nil {
		return err
	}

	data, err := json.Marshal(tokenFile{Token: token, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		return cleanupTemp(tmp, tmpName, fmt.Errorf("write token file: %w", err))
	}
	if err := tmp.Chmod(0o600); err != nil {
		return cleanupTemp(tmp, tmpName, fmt.Errorf("chmod token file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanupTemp(nil, tmpName, fmt.Errorf("close token file: %w", err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return cleanupTemp(nil, tmpName, fmt.Errorf("rename token file: %w", err))
	}
	return nil
}

func (s *TokenStore) Delete(_ context.Context, profile string) error {
	path, err := s.pathFor(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (s *TokenStore) pathFor(profile string) (string, error) {
	if !profilePattern.MatchString(profile) {
		return "", apperrors.ValidationField("profile", "profile must be 1-128 characters of letters, digits, '.', '_' or '-'")
	}
	return filepath.Join(s.dir, profile+".json"), nil
}

func cleanupTemp(f *os.File, name string, cause error) error {
	errs := []error{cause}
	if f != nil {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close temp token file: %w", err))
		}
	}
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, fmt.Errorf("remove temp token file: %w", err))
	}
	return errors.Join(errs...)
}
