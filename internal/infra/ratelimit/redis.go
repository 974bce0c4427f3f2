// Package ratelimit throttles failed logins with counters kept in redis.
package ratelimit

import (
	"context"
	"log/slog"

	"scribe/config"
	"scribe/internal/domain/lifecycle"
	"scribe/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type RedisParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRedisClient returns nil when redis is disabled. The connection is checked on start.
func NewRedisClient(params RedisParams) *redis.Client {
	cfg := params.Config.Redis
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrapf(err, "failed to ping redis at %s", cfg.Addr)
			}
			params.Logger.Info("Redis connected", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
