// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"shoecare/config"

	"github.com/go-redis/redis/v8"
)

// NewLockClient initializes the Redis client used for seed-run locking and checks it with a ping.
func NewLockClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisLockDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Lock): %w", err)
	}
	return client, nil
}
