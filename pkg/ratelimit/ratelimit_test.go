package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestTokenBucketLimiter_Allow(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

	ctx := context.Background()
	key := "ip:10.0.0.1:login"
	limit := 5
	window := time.Minute

	for i := 0; i < limit; i++ {
		allowed, err := limiter.Allow(ctx, key, limit, window)
		assert.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, key, limit, window)
	assert.NoError(t, err)
	assert.False(t, allowed, "request past the limit should be denied")

	// An unrelated key keeps its own budget
	allowed, err = limiter.Allow(ctx, "ip:10.0.0.2:login", limit, window)
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestTokenBucketLimiter_AllowN(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

	ctx := context.Background()
	key := "user:42:api"

	allowed, err := limiter.AllowN(ctx, key, 8, 10, time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.AllowN(ctx, key, 2, 10, time.Minute)
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.AllowN(ctx, key, 1, 10, time.Minute)
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestTokenBucketLimiter_GetRemaining(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

	ctx := context.Background()
	key := "user:7:register"

	remaining, err := limiter.GetRemaining(ctx, key, 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	_, err = limiter.AllowN(ctx, key, 3, 5, time.Minute)
	require.NoError(t, err)

	remaining, err = limiter.GetRemaining(ctx, key, 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
}

func TestTokenBucketLimiter_Reset(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

	ctx := context.Background()
	key := "user:13:api"
	limit := 2

	for i := 0; i < limit; i++ {
		_, err := limiter.Allow(ctx, key, limit, time.Minute)
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, key, limit, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, key))

	allowed, err = limiter.Allow(ctx, key, limit, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestTokenBucketLimiter_WindowRecovery(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

	ctx := context.Background()
	key := "ip:10.0.0.3:login"
	limit := 2
	window := 2 * time.Second

	for i := 0; i < limit; i++ {
		_, err := limiter.Allow(ctx, key, limit, window)
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, key, limit, window)
	require.NoError(t, err)
	require.False(t, allowed)

	// Expiring the bucket key resets the counter for the window
	mr.FastForward(window + 2*time.Second)

	allowed, err = limiter.Allow(ctx, key, limit, window)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestTokenBucketLimiter_FailOpen(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()

	t.Run("fail-open allows when redis is down", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(client, zap.NewNop(), true)
		mr.Close()

		allowed, err := limiter.Allow(ctx, "user:1:api", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("fail-closed rejects when redis is down", func(t *testing.T) {
		limiter := NewTokenBucketLimiter(client, zap.NewNop(), false)

		allowed, err := limiter.Allow(ctx, "user:1:api", 5, time.Minute)
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestGetRuleForEndpoint(t *testing.T) {
	cfg := &RateLimitConfig{
		RegisterPerMinute: 5,
		LoginPerMinute:    10,
		APIPerMinute:      120,
	}

	tests := []struct {
		endpoint string
		limit    int
	}{
		{"register", 5},
		{"login", 10},
		{"api", 120},
		{"unknown", 100},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			rule := GetRuleForEndpoint(tt.endpoint, cfg)
			assert.Equal(t, tt.limit, rule.Limit)
			assert.Equal(t, time.Minute, rule.Window)
		})
	}
}
