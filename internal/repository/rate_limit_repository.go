package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

type RateLimitRepository interface {
	// CheckRateLimit counts one attempt for key and reports whether it is still allowed.
	CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
	// Reset forgets the attempts recorded for key.
	Reset(ctx context.Context, key string) error
}

type rateLimitRepository struct {
	client *redis.Client
}

func NewRateLimitRepository(client *redis.Client) RateLimitRepository {
	if client == nil {
		return noopRateLimit{}
	}
	return &rateLimitRepository{client: client}
}

// ConnectRedis returns nil when url is empty.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func rateLimitKey(key string) string {
	return fmt.Sprintf("patrol:ratelimit:%x", sha256.Sum256([]byte(key)))
}

func (r *rateLimitRepository) CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	k := rateLimitKey(key)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		// fail open
		logger.WarnContext(ctx, "Rate limit check failed", "error", err)
		return true, nil
	}
	return incr.Val() <= int64(requests), nil
}

func (r *rateLimitRepository) Reset(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return r.client.Del(ctx, rateLimitKey(key)).Err()
}

type noopRateLimit struct{}

func (noopRateLimit) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

func (noopRateLimit) Reset(context.Context, string) error { return nil }
