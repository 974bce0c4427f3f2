package ratelimit

import (
	"context"
	"strconv"
	"time"

	"scribe/config"
	"scribe/internal/domain/service"
	"scribe/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const failureKeyPrefix = "scribe:login:fail:"

// failureCounter is the subset of redis commands the throttle issues.
type failureCounter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisThrottle counts failures per name in a key that expires window after the first failure.
// Every failure re-arms a missing TTL.
type redisThrottle struct {
	counter     failureCounter
	maxFailures int64
	window      time.Duration
}

type ThrottleParams struct {
	fx.In

	Config *config.Config
	Client *redis.Client `optional:"true"`
}

// NewLoginThrottle returns a pass-through throttle unless loginThrottle is enabled.
func NewLoginThrottle(params ThrottleParams) service.LoginThrottle {
	cfg := params.Config.LoginThrottle
	if cfg == nil || !cfg.Enabled || params.Client == nil {
		return noopThrottle{}
	}

	return newRedisThrottle(params.Client, cfg.MaxFailures, cfg.Window)
}

func newRedisThrottle(counter failureCounter, maxFailures int, window time.Duration) *redisThrottle {
	return &redisThrottle{
		counter:     counter,
		maxFailures: int64(maxFailures),
		window:      window,
	}
}

func failureKey(name string) string {
	return failureKeyPrefix + name
}

// Allow answers true alongside any error so callers can fail open.
func (t *redisThrottle) Allow(ctx context.Context, name string) (bool, error) {
	raw, err := t.counter.Get(ctx, failureKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, errors.Wrap(err, "read login failures")
	}

	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true, errors.Wrapf(err, "parse login failures %q", raw)
	}

	return count < t.maxFailures, nil
}

func (t *redisThrottle) RecordFailure(ctx context.Context, name string) error {
	key := failureKey(name)

	if err := t.counter.Incr(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "count login failure")
	}
	if err := t.counter.ExpireNX(ctx, key, t.window).Err(); err != nil {
		return errors.Wrap(err, "expire login failures")
	}

	return nil
}

func (t *redisThrottle) Reset(ctx context.Context, name string) error {
	if err := t.counter.Del(ctx, failureKey(name)).Err(); err != nil {
		return errors.Wrap(err, "reset login failures")
	}

	return nil
}

type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopThrottle) RecordFailure(context.Context, string) error { return nil }
func (noopThrottle) Reset(context.Context, string) error         { return nil }

// Module provides the redis client and the login throttle.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRedisClient, NewLoginThrottle),
)
