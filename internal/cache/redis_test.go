package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T, ttl time.Duration) (*RedisCache, context.Context) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start redis container")
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	c, err := NewRedisCache(ctx, Config{Addr: endpoint, TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, ctx
}

func TestRedisCache_SetGet(t *testing.T) {
	c, ctx := setupRedis(t, time.Minute)

	_, ok, err := c.Get(ctx, "events:beach:upcoming")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "events:beach:upcoming", []byte(`[]`)))

	val, ok, err := c.Get(ctx, "events:beach:upcoming")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), val)
}

func TestRedisCache_Expires(t *testing.T) {
	c, ctx := setupRedis(t, time.Second)

	require.NoError(t, c.Set(ctx, "events:volleyball:2024", []byte(`[]`)))

	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "events:volleyball:2024")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
