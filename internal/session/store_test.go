package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/deptdash/internal/adapters/filestore"
	"github.com/target/deptdash/internal/adapters/memory"
	domainauth "github.com/target/deptdash/internal/domain/auth"
	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/mocks"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore(StoreOptions{Backend: memory.NewTokenStore(), Profile: "  "})
	assert.Equal(t, domainauth.DefaultProfile, s.Profile())
	assert.NotNil(t, s.logger)
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(StoreOptions{Backend: memory.NewTokenStore()})

	assert.Empty(t, s.GetToken(ctx))

	for _, token := range []string{"t1", "not-a-jwt", "Bearer looking token", "t1"} {
		require.NoError(t, s.SetToken(ctx, token))
		assert.Equal(t, token, s.GetToken(ctx))
		assert.Equal(t, token, s.GetToken(ctx), "repeated reads are stable")
	}

	require.NoError(t, s.ClearToken(ctx))
	assert.Empty(t, s.GetToken(ctx))
	require.NoError(t, s.ClearToken(ctx), "clearing an empty store is not an error")
}

func TestStore_RequireToken(t *testing.T) {
	ctx := context.Background()
	s := NewStore(StoreOptions{Backend: memory.NewTokenStore()})

	_, err := s.RequireToken(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotAuthenticated(err))
	assert.Equal(t, "No token found. Please login first.", apperrors.Message(err))

	require.NoError(t, s.SetToken(ctx, "tok"))
	token, err := s.RequireToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestStore_ProfilesShareBackendButNotTokens(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewTokenStore()
	alice := NewStore(StoreOptions{Backend: backend, Profile: "alice"})
	bob := NewStore(StoreOptions{Backend: backend, Profile: "bob"})

	require.NoError(t, alice.SetToken(ctx, "tok-a"))
	assert.Empty(t, bob.GetToken(ctx))

	require.NoError(t, bob.SetToken(ctx, "tok-b"))
	require.NoError(t, alice.ClearToken(ctx))
	assert.Equal(t, "tok-b", bob.GetToken(ctx))
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	backend, err := filestore.NewTokenStore(dir)
	require.NoError(t, err)
	require.NoError(t, NewStore(StoreOptions{Backend: backend}).SetToken(ctx, "persisted"))

	reopened, err := filestore.NewTokenStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "persisted", NewStore(StoreOptions{Backend: reopened}).GetToken(ctx))
}

func TestStore_BackendFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("backend down")

	t.Run("get never fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockTokenBackend(ctrl)
		backend.EXPECT().Load(gomock.Any(), "default").Return("", boom).Times(2)

		s := NewStore(StoreOptions{Backend: backend})
		assert.Empty(t, s.GetToken(ctx))

		_, err := s.RequireToken(ctx)
		assert.True(t, apperrors.IsNotAuthenticated(err))
	})

	t.Run("set surfaces error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockTokenBackend(ctrl)
		backend.EXPECT().Save(gomock.Any(), "work", "tok").Return(boom)

		err := NewStore(StoreOptions{Backend: backend, Profile: "work"}).SetToken(ctx, "tok")
		require.ErrorIs(t, err, boom)
	})

	t.Run("clear surfaces error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backend := mocks.NewMockTokenBackend(ctrl)
		backend.EXPECT().Delete(gomock.Any(), "default").Return(boom)

		err := NewStore(StoreOptions{Backend: backend}).ClearToken(ctx)
		require.ErrorIs(t, err, boom)
	})
}
