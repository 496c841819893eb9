package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"contentgenius/internal/app/config"
	"contentgenius/internal/app/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := redis.New(context.Background(), config.RedisConfig{
		Host:        server.Host(),
		Port:        port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func TestHitCountsWithinWindow(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := client.Hit(ctx, "user:1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
	assert.Equal(t, time.Minute, server.TTL("ratelimit:user:1"))

	other, err := client.Hit(ctx, "user:2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestHitResetsAfterWindow(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	_, err := client.Hit(ctx, "ip:10.0.0.1", time.Minute)
	require.NoError(t, err)
	server.FastForward(2 * time.Minute)

	count, err := client.Hit(ctx, "ip:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHitRestoresMissingExpiry(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, server.Set("ratelimit:ip:10.0.0.2", "50"))
	require.Zero(t, server.TTL("ratelimit:ip:10.0.0.2"))

	count, err := client.Hit(ctx, "ip:10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(51), count)
	assert.Equal(t, time.Minute, server.TTL("ratelimit:ip:10.0.0.2"))

	server.FastForward(2 * time.Minute)
	count, err = client.Hit(ctx, "ip:10.0.0.2", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNewFailsWithoutServer(t *testing.T) {
	_, err := redis.New(context.Background(), config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
	})
	assert.Error(t, err)
}
