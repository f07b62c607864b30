package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	loginAttemptKeyPrefix = "login:attempts:"
	loginAttemptWindow    = 15 * time.Minute
	loginAttemptMax       = 5
)

// LoginLimiter throttles credential guessing per client. Implementations
// are injected into the service so tests can swap them out.
//
//go:generate mockgen -source=login_limiter.go -destination=mock/login_limiter_mock.go -package=mock
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type redisLoginLimiter struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisLoginLimiter(rdb *redis.Client, logger ...*zap.Logger) LoginLimiter {
	l := zap.L().Named("auth.login_limiter")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.login_limiter")
	}
	return &redisLoginLimiter{rdb: rdb, logger: l}
}

func (r *redisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginAttemptKeyPrefix + strings.ToLower(key)

	count, err := r.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		// Redis being down must not lock everyone out.
		r.logger.Warn("login limiter unavailable, allowing attempt", zap.Error(err))
		return true, nil
	}
	if count == 1 {
		if err := r.rdb.Expire(ctx, redisKey, loginAttemptWindow).Err(); err != nil {
			r.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}

	return count <= loginAttemptMax, nil
}

func (r *redisLoginLimiter) Reset(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, loginAttemptKeyPrefix+strings.ToLower(key)).Err()
}
