package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/cryptopulse/config"
)

// InitRedis initializes the Redis client used by the result cache.
//
// Behavior:
//   - Builds the client from cfg.Redis (address, password, DB index).
//   - Pings the server with a short timeout to validate connectivity.
//   - Returns the live client if successful.
func InitRedis(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// redisOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var redisOpener = InitRedis
