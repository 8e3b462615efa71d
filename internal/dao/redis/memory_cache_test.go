package redis

import (
	"context"
	"testing"
	"time"

	"pigeon_chat_server/pkg/errorx"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", got)

	// Absent key: Get is soft, GetOrError is not.
	got, err = cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, got)
	_, err = cache.GetOrError(ctx, "missing")
	require.Equal(t, errorx.CodeNotFound, errorx.GetCode(err))
}

func TestMemoryCacheTTL(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryCacheDeleteByPattern(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "message_list_C1", "a", 0))
	require.NoError(t, cache.Set(ctx, "message_list_C2", "b", 0))
	require.NoError(t, cache.Set(ctx, "presence_U1", "online", 0))

	require.NoError(t, cache.DeleteByPattern(ctx, "message_list_*"))

	got, _ := cache.Get(ctx, "message_list_C1")
	require.Empty(t, got)
	got, _ = cache.Get(ctx, "presence_U1")
	require.Equal(t, "online", got)
}

func TestMemoryCacheSets(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.AddToSet(ctx, "online_users", "U1", "U2"))
	members, err := cache.GetSetMembers(ctx, "online_users")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"U1", "U2"}, members)

	require.NoError(t, cache.RemoveFromSet(ctx, "online_users", "U1"))
	members, err = cache.GetSetMembers(ctx, "online_users")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"U2"}, members)
}
