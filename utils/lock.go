package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrLockHeld is returned when another run owns the lock.
var ErrLockHeld = errors.New("seed lock is held by another run")

// releaseScript deletes the key only while it still holds our token, so an expired lock re-taken by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// ReleaseFunc gives a held lock back.
type ReleaseFunc func(ctx context.Context) error

// RedisLock serializes seed runs across processes.
type RedisLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLock returns a lock on SeedLockPrefix+name that expires after ttl if never released.
func NewRedisLock(client *redis.Client, name string, ttl time.Duration) *RedisLock {
	return &RedisLock{client: client, key: SeedLockPrefix + name, ttl: ttl}
}

// Acquire takes the lock for owner without waiting.
func (l *RedisLock) Acquire(ctx context.Context, owner string) (ReleaseFunc, error) {
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s: %w", l.key, err)
	}
	if !ok {
		holder, err := l.client.Get(ctx, l.key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrLockHeld, l.key)
		}
		return nil, fmt.Errorf("%w: %s (run %s)", ErrLockHeld, l.key, holder)
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, owner).Err(); err != nil {
			return fmt.Errorf("failed to release %s: %w", l.key, err)
		}
		return nil
	}, nil
}

// NoopLock is used when no Redis is configured; runs are assumed not to overlap.
type NoopLock struct{}

func (NoopLock) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
