package utils

import (
	"context"
	"os"
	"testing"
	"time"

	"shoecare/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLock(t *testing.T) {
	release, err := NoopLock{}.Acquire(context.Background(), "run-1")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

func TestRedisLockExclusive(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	client, err := NewLockClient(ctx, &config.Config{RedisAddr: addr})
	require.NoError(t, err)
	defer client.Close()

	name := "test-" + uuid.NewString()
	first := NewRedisLock(client, name, time.Minute)
	second := NewRedisLock(client, name, time.Minute)

	release, err := first.Acquire(ctx, "run-a")
	require.NoError(t, err)

	_, err = second.Acquire(ctx, "run-b")
	require.ErrorIs(t, err, ErrLockHeld)
	assert.Contains(t, err.Error(), "run-a")

	require.NoError(t, release(ctx))

	releaseB, err := second.Acquire(ctx, "run-b")
	require.NoError(t, err)
	require.NoError(t, releaseB(ctx))
}

func TestRedisLockReleaseLeavesForeignOwner(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	client, err := NewLockClient(ctx, &config.Config{RedisAddr: addr})
	require.NoError(t, err)
	defer client.Close()

	lock := NewRedisLock(client, "test-"+uuid.NewString(), time.Minute)
	release, err := lock.Acquire(ctx, "run-a")
	require.NoError(t, err)

	// Simulate expiry followed by another run taking over.
	require.NoError(t, client.Set(ctx, lock.key, "run-b", time.Minute).Err())
	require.NoError(t, release(ctx))

	holder, err := client.Get(ctx, lock.key).Result()
	require.NoError(t, err)
	assert.Equal(t, "run-b", holder)
	require.NoError(t, client.Del(ctx, lock.key).Err())
}
