package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	"github.com/redis/go-redis/v9"
)

const analysisKeyPrefix = "tutorly:session-analysis:"

var ErrMiss = errors.New("cache miss")

type (
	AnalysisCache interface {
		Get(ctx context.Context, sessionID string) (analysis.Analysis, error)
		Set(ctx context.Context, sessionID string, a analysis.Analysis) error
		Delete(ctx context.Context, sessionID string) error
	}

	redisAnalysisCache struct {
		client *redis.Client
		ttl    time.Duration
	}

	noopAnalysisCache struct{}
)

func NewRedisAnalysisCache(client *redis.Client, ttl time.Duration) AnalysisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisAnalysisCache{client: client, ttl: ttl}
}

// NewNoopAnalysisCache always misses, so reads fall through to the database.
func NewNoopAnalysisCache() AnalysisCache {
	return noopAnalysisCache{}
}

func (c *redisAnalysisCache) Get(ctx context.Context, sessionID string) (analysis.Analysis, error) {
	var a analysis.Analysis
	raw, err := c.client.Get(ctx, analysisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return a, ErrMiss
	}
	if err != nil {
		return a, fmt.Errorf("error get analysis in cache: %w", err)
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, fmt.Errorf("error decode cached analysis: %w", err)
	}
	return a, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, sessionID string, a analysis.Analysis) error {
	val, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("error encode analysis for cache: %w", err)
	}
	if err := c.client.Set(ctx, analysisKeyPrefix+sessionID, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("error saving analysis to cache: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, analysisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("error deleting key %s: %w", analysisKeyPrefix+sessionID, err)
	}
	return nil
}

func (noopAnalysisCache) Get(context.Context, string) (analysis.Analysis, error) {
	return analysis.Analysis{}, ErrMiss
}

func (noopAnalysisCache) Set(context.Context, string, analysis.Analysis) error { return nil }

func (noopAnalysisCache) Delete(context.Context, string) error { return nil }
