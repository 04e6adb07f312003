package cache

import (
	"context"
	"time"

	"hackreg/internal/models"
)

// DefaultStatsTTL is how long dashboard counters are served from cache.
const DefaultStatsTTL = 30 * time.Second

// StatsCache caches the admin dashboard counters.
type StatsCache interface {
	Get(ctx context.Context) (*models.AdminStats, error)
	Set(ctx context.Context, stats *models.AdminStats) error
	Invalidate(ctx context.Context) error
}

type statsCache struct {
	cache Cache
	ttl   time.Duration
}

// NewStatsCache creates a StatsCache.
func NewStatsCache(cache Cache, ttl time.Duration) StatsCache {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &statsCache{cache: cache, ttl: ttl}
}

// Get returns the cached counters, or nil on a miss.
func (s *statsCache) Get(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	found, err := s.cache.Get(ctx, StatsCacheKey, &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &stats, nil
}

func (s *statsCache) Set(ctx context.Context, stats *models.AdminStats) error {
	return s.cache.Set(ctx, StatsCacheKey, stats, s.ttl)
}

func (s *statsCache) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, StatsCacheKey)
}
