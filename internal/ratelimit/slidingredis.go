package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter counts report requests per client inside a rolling window,
// one Redis sorted set per key. Scores are event timestamps in
// nanoseconds and members are unique per event, so concurrent requests
// from the same client never collapse into a single entry.
type Limiter struct {
	Client *redis.Client
	Prefix string
}

// Allow records one request under key and reports whether the window
// still has room. The request is counted before the check, so a client
// already at the limit sees its own request rejected. A nil client or
// non-positive limit disables enforcement.
func (l Limiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	now := time.Now()
	reset := now.Add(window)
	if l.Client == nil || max <= 0 || window <= 0 {
		return true, max, reset, nil
	}

	bucket := l.Prefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, bucket, "-inf", cutoff)
	pipe.ZAdd(ctx, bucket, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	countCmd := pipe.ZCard(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	used := int(countCmd.Val())
	remaining := max - used
	if remaining < 0 {
		remaining = 0
	}
	return used <= max, remaining, reset, nil
}
