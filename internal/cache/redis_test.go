package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulai-app/soulai/internal/cache"
	"github.com/soulai-app/soulai/internal/config"
	"github.com/soulai-app/soulai/internal/snapshot"
)

func setupCache(t *testing.T) *cache.RedisCache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	return cache.NewRedisCache(cfg)
}

func TestRedisSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.Save(ctx, snapshot.KeyCatalog, []byte(`{"profiles":[]}`)))

	data, err := c.Load(ctx, snapshot.KeyCatalog)
	require.NoError(t, err)
	assert.JSONEq(t, `{"profiles":[]}`, string(data))
}

func TestRedisLoadMissing(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	_, err := c.Load(ctx, snapshot.KeyBlocked)
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}
