package limiter

import (
	"context"
	"errors"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limited")

type LimiterRedis struct {
	limiter *redis_rate.Limiter
}

func NewLimiterRedis(client redis.UniversalClient) (*LimiterRedis, error) {
	if client == nil {
		return nil, errors.New("limiter: nil redis client")
	}
	return &LimiterRedis{redis_rate.NewLimiter(client)}, nil
}

// Allow consumes one token for key and reports ErrRateLimited once the
// bucket is empty.
func (l *LimiterRedis) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	res, err := l.limiter.Allow(ctx, key, limit)
	if err != nil {
		return err
	}
	if res.Allowed == 0 {
		return ErrRateLimited
	}
	return nil
}
