package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, "page:", ttl), mr
}

func exercise(t *testing.T, c PageCache) {
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "index:1", []byte("first")))
	require.NoError(t, c.Set(ctx, "index:2", []byte("second")))

	v, ok, err := c.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("first"), v)

	require.NoError(t, c.Delete(ctx, "index:1"))
	_, ok, _ = c.Get(ctx, "index:1")
	assert.False(t, ok)

	require.NoError(t, c.Clear(ctx))
	_, ok, _ = c.Get(ctx, "index:2")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	c, _ := newRedis(t, time.Minute)
	exercise(t, c)
}

func TestMemoryCache(t *testing.T) {
	exercise(t, NewMemoryCache(16, time.Minute))
}

func TestRedisCacheExpires(t *testing.T) {
	c, mr := newRedis(t, 20*time.Second)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "index:1", []byte("x")))

	mr.FastForward(19 * time.Second)
	_, ok, _ := c.Get(ctx, "index:1")
	assert.True(t, ok)

	mr.FastForward(2 * time.Second)
	_, ok, _ = c.Get(ctx, "index:1")
	assert.False(t, ok)
}

func TestRedisCacheClearKeepsForeignKeys(t *testing.T) {
	c, mr := newRedis(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, mr.Set("session:abc", "keep"))
	require.NoError(t, c.Set(ctx, "index:1", []byte("x")))

	require.NoError(t, c.Clear(ctx))
	assert.True(t, mr.Exists("session:abc"))
	assert.False(t, mr.Exists("page:index:1"))
}

func TestMemoryCacheExpires(t *testing.T) {
	c := NewMemoryCache(4, 30*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
