package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/iho/easybank/internal/domain"
)

// SlidingWindowLimiter implements usecase.RateLimiter with a Redis sorted
// set per key. Each allowed request is a member scored by its timestamp in
// milliseconds; members older than the window are purged before counting.
//
// Admission is check-then-verify: the request is counted first, added, then
// recounted. If the recount shows the add pushed the set over the limit (a
// concurrent request won the race), the member is removed again and the
// request rejected. The set therefore never stays above the limit.
//
// Redis being unreachable rejects the request as well. An unknown count must
// not become an unlimited pass.
type SlidingWindowLimiter struct {
	client     *redis.Client
	prefix     string
	retryAfter time.Duration
	now        func() time.Time
}

// NewSlidingWindowLimiter creates a new SlidingWindowLimiter. retryAfter is
// the hint handed to throttled callers.
func NewSlidingWindowLimiter(client *redis.Client, retryAfter time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client:     client,
		prefix:     "ratelimit:",
		retryAfter: retryAfter,
		now:        time.Now,
	}
}

// Check records one request under key and reports whether it is allowed
// within the window.
func (l *SlidingWindowLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) error {
	redisKey := l.prefix + key
	now := l.now()
	windowStart := now.Add(-window).UnixMilli()

	if err := l.client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		return l.unavailable(key, err)
	}

	count, err := l.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return l.unavailable(key, err)
	}
	if count >= int64(limit) {
		return l.reject(key)
	}

	member := fmt.Sprintf("%d:%s", now.UnixMilli(), ulid.Make().String())
	if err := l.client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: member,
	}).Err(); err != nil {
		return l.unavailable(key, err)
	}

	// Keep the set from outliving an idle key. Twice the window so a member
	// added at the end of one window survives into the next purge.
	if err := l.client.Expire(ctx, redisKey, 2*window).Err(); err != nil {
		return l.unavailable(key, err)
	}

	recount, err := l.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return l.unavailable(key, err)
	}
	if recount > int64(limit) {
		if err := l.client.ZRem(ctx, redisKey, member).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove overflow rate limit member")
		}
		return l.reject(key)
	}

	return nil
}

func (l *SlidingWindowLimiter) reject(key string) error {
	log.Debug().Str("key", key).Msg("rate limit exceeded")
	return &domain.RateLimitError{RetryAfter: l.retryAfter}
}

func (l *SlidingWindowLimiter) unavailable(key string, err error) error {
	log.Error().Err(err).Str("key", key).Msg("rate limiter storage unavailable, rejecting")
	return &domain.RateLimitError{RetryAfter: l.retryAfter}
}
