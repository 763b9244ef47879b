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

func TestIncrWithExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	n, err := c.IncrWithExpire(ctx, "rl", "ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Minute, mr.TTL("rl:ip:1"))

	n, err = c.IncrWithExpire(ctx, "rl", "ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	mr.FastForward(2 * time.Minute)
	n, err = c.IncrWithExpire(ctx, "rl", "ip:1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSetGet(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rl", "blocked", "1", 10*time.Second))
	v, err := c.Get(ctx, "rl", "blocked")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	ttl, err := c.GetTTL(ctx, "rl", "blocked")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, ttl)

	_, err = c.Get(ctx, "rl", "missing")
	assert.ErrorIs(t, err, redis.Nil)
}
