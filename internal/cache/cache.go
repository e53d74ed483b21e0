package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// ResultCache holds previously computed query results keyed by the
// deterministic strings from keys.go. The two result families live in
// disjoint key namespaces and have their own typed accessors, so a read
// never needs runtime type inspection.
//
// Get methods report a miss via the second return value; any other failure
// (connection refused, bad payload) is returned as an error and must not be
// treated as a miss.
type ResultCache interface {
	GetNormalizedRanges(ctx context.Context, key string) ([]models.NormalizedRange, bool, error)
	SetNormalizedRanges(ctx context.Context, key string, ranges []models.NormalizedRange) error
	GetStatistic(ctx context.Context, key string) (models.SymbolStatistic, bool, error)
	SetStatistic(ctx context.Context, key string, stat models.SymbolStatistic) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache wraps a Redis client as a ResultCache. Entries are stored as
// JSON with no TTL; they persist until externally cleared.
func NewRedisCache(client *redis.Client) ResultCache {
	return &redisCache{client: client}
}

func (c *redisCache) GetNormalizedRanges(ctx context.Context, key string) ([]models.NormalizedRange, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var ranges []models.NormalizedRange
	if err := json.Unmarshal([]byte(val), &ranges); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return ranges, true, nil
}

func (c *redisCache) SetNormalizedRanges(ctx context.Context, key string, ranges []models.NormalizedRange) error {
	payload, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) GetStatistic(ctx context.Context, key string) (models.SymbolStatistic, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.SymbolStatistic{}, false, nil
	}
	if err != nil {
		return models.SymbolStatistic{}, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var stat models.SymbolStatistic
	if err := json.Unmarshal([]byte(val), &stat); err != nil {
		return models.SymbolStatistic{}, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return stat, true, nil
}

func (c *redisCache) SetStatistic(ctx context.Context, key string, stat models.SymbolStatistic) error {
	payload, err := json.Marshal(stat)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
