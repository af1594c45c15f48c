package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/deptdash/internal/ports"
)

// RunTokenBackendContract exercises the behaviour every ports.TokenBackend must share.
// newBackend is called once per subtest and must return an empty backend.
func RunTokenBackendContract(t *testing.T, newBackend func(t *testing.T) ports.TokenBackend) {
	t.Helper()

	t.Run("load missing returns empty", func(t *testing.T) {
		b := newBackend(t)
		token, err := b.Load(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("save then load", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "alice", "tok-1"))

		token, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
	})

	t.Run("save replaces previous token", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "alice", "tok-1"))
		require.NoError(t, b.Save(ctx, "alice", "tok-2"))

		token, err := b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", token)
	})

	t.Run("profiles are isolated", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		require.NoError(t, b.Save(ctx, "alice", "tok-a"))
		require.NoError(t, b.Save(ctx, "bob", "tok-b"))
		require.NoError(t, b.Delete(ctx, "alice"))

		token, err := b.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "tok-b", token)

		token, err = b.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("delete missing is not an error", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Delete(context.Background(), "ghost"))
	})

	t.Run("concurrent saves", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, b.Save(ctx, fmt.Sprintf("p%d", i), fmt.Sprintf("tok-%d", i)))
			}(i)
		}
		wg.Wait()

		for i := range 8 {
			token, err := b.Load(ctx, fmt.Sprintf("p%d", i))
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("tok-%d", i), token)
		}
	})
}
