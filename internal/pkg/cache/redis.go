package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewAnalysisCache uses redis when redis.addr is set and reachable, and a
// no-op cache otherwise. The returned close func is always safe to call.
func NewAnalysisCache(config *viper.Viper, log *logrus.Logger) (AnalysisCache, func() error) {
	addr := config.GetString("redis.addr")
	if addr == "" {
		log.Info("Redis not configured, analysis cache disabled")
		return NewNoopAnalysisCache(), func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetString("redis.password"),
		DB:       config.GetInt("redis.db"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Error connect to Redis at %s: %v, analysis cache disabled", addr, err)
		_ = client.Close()
		return NewNoopAnalysisCache(), func() error { return nil }
	}

	return NewRedisAnalysisCache(client, config.GetDuration("redis.ttl")), client.Close
}
