// Package cli wires configuration into the service and holds the logic of the
// offline render and inspect commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/lectern"
	"github.com/aretw0/lectern/internal/config"
	"github.com/aretw0/lectern/pkg/adapters/fetch"
	"github.com/aretw0/lectern/pkg/adapters/memory"
	"github.com/aretw0/lectern/pkg/adapters/redis"
	"github.com/aretw0/lectern/pkg/observability"
	"github.com/aretw0/lectern/pkg/ports"
)

// Runtime is a fully wired service and the resources it owns.
type Runtime struct {
	Service *lectern.Service
	Metrics *observability.Metrics

	closers []func() error
}

// Close releases owned resources such as the Redis connection.
func (rt *Runtime) Close() error {
	var errs []error
	for _, c := range rt.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// NewRuntime builds the image pipeline, metrics and service from cfg.
// A configured Redis address that cannot be reached falls back to the
// in-process cache with a warning.
func NewRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{}
	if cfg.Metrics {
		rt.Metrics = observability.NewMetrics()
	}

	srcOpts := []fetch.Option{
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithLogger(logger),
		fetch.WithUserAgent("lectern/" + lectern.Version),
	}
	if cfg.Fetch.AllowLocalFiles {
		srcOpts = append(srcOpts, fetch.WithLocalFiles(cfg.Fetch.BaseDir))
	}
	if rt.Metrics != nil {
		srcOpts = append(srcOpts, fetch.WithRecorder(rt.Metrics))
	}
	var images ports.ImageSource = fetch.New(srcOpts...)

	if cfg.Cache.Enabled {
		cache := rt.imageCache(ctx, cfg.Cache, logger)
		cacheOpts := []fetch.CachedOption{
			fetch.WithCacheTTL(cfg.Cache.TTL),
			fetch.WithCacheLogger(logger),
		}
		if rt.Metrics != nil {
			cacheOpts = append(cacheOpts, fetch.WithCacheRecorder(rt.Metrics))
		}
		images = fetch.NewCached(images, cache, cacheOpts...)
	}

	svcOpts := []lectern.Option{
		lectern.WithLogger(logger),
		lectern.WithImageSource(images),
		lectern.WithMaxConcurrentBuilds(cfg.MaxConcurrentBuilds),
		lectern.WithDecksDir(cfg.DecksDir),
	}
	if rt.Metrics != nil {
		svcOpts = append(svcOpts, lectern.WithMetrics(rt.Metrics))
	}
	svc, err := lectern.New(svcOpts...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("error initializing service: %w", err)
	}
	rt.Service = svc
	return rt, nil
}

func (rt *Runtime) imageCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) ports.ImageCache {
	if cfg.RedisAddr != "" {
		c, err := redis.New(ctx, cfg.RedisAddr, redis.WithPrefix(cfg.Prefix), redis.WithTTL(cfg.TTL))
		if err == nil {
			rt.closers = append(rt.closers, c.Close)
			logger.Info("Image cache: redis", "addr", cfg.RedisAddr)
			return c
		}
		logger.Warn("Redis unavailable, using in-process image cache", "addr", cfg.RedisAddr, "err", err)
	}
	return memory.NewCache()
}
