package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/deptdash/internal/ports"
	"github.com/target/deptdash/internal/testutil"
)

func TestTokenStore_Contract(t *testing.T) {
	testutil.RunTokenBackendContract(t, func(t *testing.T) ports.TokenBackend {
		client := testutil.SetupTestRedis(t)
		t.Cleanup(func() { _ = client.Close() })
		return NewTokenStore(client)
	})
}

func TestTokenStore_KeyLayout(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store := NewTokenStoreWithPrefix(client, "test:tokens:")
	require.NoError(t, store.Save(ctx, "default", "tok-1"))

	val, err := client.Get(ctx, "test:tokens:default").Result()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", val)

	ttl, err := client.TTL(ctx, "test:tokens:default").Result()
	require.NoError(t, err)
	assert.Less(t, ttl, time.Duration(0), "token keys carry no expiry")
}

func TestTokenStore_EmptyProfile(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	store := NewTokenStore(client)

	require.Error(t, store.Save(ctx, "", "tok"))
	token, err := store.Load(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, token)
	require.NoError(t, store.Delete(ctx, ""))
}

func TestNewTokenStoreWithPrefix_DefaultsBlankPrefix(t *testing.T) {
	store := NewTokenStoreWithPrefix(nil, "  ")
	assert.Equal(t, DefaultTokenPrefix, store.prefix)
}
