package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scamdb/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const statisticsKey = "scamdb:statistics"

// StatsCache is a short-lived redis cache for the statistics aggregate.
// The service works without one; callers treat a nil *StatsCache as disabled.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context) (*model.Statistics, bool) {
	raw, err := c.rdb.Get(ctx, statisticsKey).Bytes()
	if err != nil {
		return nil, false // miss or redis unavailable, caller recomputes
	}
	stats := &model.Statistics{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, false
	}
	return stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *model.Statistics) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, statisticsKey, raw, c.ttl)
}

// Invalidate drops the cached aggregate after a record mutation.
func (c *StatsCache) Invalidate(ctx context.Context) {
	c.rdb.Del(ctx, statisticsKey)
}
