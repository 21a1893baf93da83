package redisclient

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationClient(t *testing.T) *Client {
	t.Helper()
	raw := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := raw.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	return NewClient(raw)
}

func TestClientRoundTrip(t *testing.T) {
	client := newIntegrationClient(t)
	ctx := context.Background()
	key := "app-campaign:test:roundtrip"

	require.NoError(t, client.Set(ctx, key, "value", time.Minute).Err())
	value, err := client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, client.Del(ctx, key).Err())
	err = client.Get(ctx, key).Err()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestClientPing(t *testing.T) {
	client := newIntegrationClient(t)
	assert.NoError(t, client.Ping(context.Background()).Err())
}
