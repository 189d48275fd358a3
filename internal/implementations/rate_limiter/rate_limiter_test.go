package ratelimiter

import (
	"context"
	"resetme/internal/core/domain/logging"
	ratelimiter "resetme/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/assert"
)

var NOW = time.Date(2022, 6, 15, 12, 34, 55, 1, time.UTC)

func TestAllowsUpToLimit(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	limiter := NewRedis(client, logging.NewFakeLogger(), func() time.Time { return NOW })

	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Minute}
	for i := 0; i < 3; i++ {
		result := limiter.CheckLimit(context.Background(), "test-key", limit)
		assert.True(t, result.IsAllowed)
	}
	result := limiter.CheckLimit(context.Background(), "test-key", limit)
	assert.False(t, result.IsAllowed)
}

func TestKeysAreIndependent(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	limiter := NewRedis(client, logging.NewFakeLogger(), func() time.Time { return NOW })

	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Hour}
	assert.True(t, limiter.CheckLimit(context.Background(), "key-1", limit).IsAllowed)
	assert.False(t, limiter.CheckLimit(context.Background(), "key-1", limit).IsAllowed)
	assert.True(t, limiter.CheckLimit(context.Background(), "key-2", limit).IsAllowed)
}

func TestAllowsWhenRedisIsDown(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	mini.Close()
	limiter := NewRedis(client, logging.NewFakeLogger(), func() time.Time { return NOW })

	limit := ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute}
	result := limiter.CheckLimit(context.Background(), "test-key", limit)
	assert.True(t, result.IsAllowed)
}
