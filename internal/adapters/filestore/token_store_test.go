package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/ports"
	"github.com/target/deptdash/internal/testutil"
)

func newStore(t *testing.T) *TokenStore {
	t.Helper()
	s, err := NewTokenStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	return s
}

func TestTokenStore_Contract(t *testing.T) {
	testutil.RunTokenBackendContract(t, func(t *testing.T) ports.TokenBackend {
		return newStore(t)
	})
}

func TestNewTokenStore_RequiresDir(t *testing.T) {
	_, err := NewTokenStore("")
	require.Error(t, err)
}

func TestTokenStore_FileLayoutAndPermissions(t *testing.T) {
	s := newStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Save(context.Background(), "default", "tok-1"))

	path := filepath.Join(s.Dir(), "default.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var tf tokenFile
	require.NoError(t, json.Unmarshal(raw, &tf))
	assert.Equal(t, "tok-1", tf.Token)
	assert.True(t, tf.SavedAt.Equal(fixed))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestTokenStore_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	first, err := NewTokenStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), "default", "tok-persisted"))

	second, err := NewTokenStore(dir)
	require.NoError(t, err)
	token, err := second.Load(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "tok-persisted", token)
}

func TestTokenStore_RejectsUnsafeProfiles(t *testing.T) {
	s := newStore(t)
	for _, profile := range []string{"", "../etc", "a/b", ".hidden"} {
		err := s.Save(context.Background(), profile, "x")
		assert.True(t, apperrors.IsValidation(err), "profile %q: %v", profile, err)
		assert.Equal(t, "profile", apperrors.GetField(err))
	}
}

func TestTokenStore_CorruptFile(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "default.json"), []byte("{"), 0o600))

	_, err := s.Load(context.Background(), "default")
	require.Error(t, err)
}
