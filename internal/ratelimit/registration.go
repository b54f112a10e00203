package ratelimit

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/codiolabs/marketplace-registration/internal/config"
)

// RegistrationLimiter throttles registration attempts per client address.
// A nil limiter (no redis configured) allows everything.
type RegistrationLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewRegistrationLimiter(cfg config.Config) *RegistrationLimiter {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return &RegistrationLimiter{
		bucket: NewTokenBucket(client),
		rate:   cfg.RateLimitRPS,
		burst:  cfg.RateLimitBurst,
	}
}

func (l *RegistrationLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *RegistrationLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf("registration:ip:%s", clientIP)
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
