package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/aretw0/lectern/internal/logging"
	"github.com/aretw0/lectern/pkg/ports"
)

// Cached decorates an ImageSource with an ImageCache.
// Data URIs bypass the cache. Cache errors are logged and never fail a fetch.
type Cached struct {
	source   ports.ImageSource
	cache    ports.ImageCache
	ttl      time.Duration
	logger   *slog.Logger
	recorder Recorder
}

// CachedOption configures a Cached source.
type CachedOption func(*Cached)

// WithCacheTTL sets the TTL passed to the cache. Zero uses the cache default.
func WithCacheTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for cache failures.
func WithCacheLogger(l *slog.Logger) CachedOption {
	return func(c *Cached) {
		c.logger = l
	}
}

// WithCacheRecorder reports cache hits.
func WithCacheRecorder(r Recorder) CachedOption {
	return func(c *Cached) {
		c.recorder = r
	}
}

// NewCached wraps source with cache.
func NewCached(source ports.ImageSource, cache ports.ImageCache, opts ...CachedOption) *Cached {
	c := &Cached{
		source:   source,
		cache:    cache,
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached image for ref, fetching and storing it on a miss.
func (c *Cached) Fetch(ctx context.Context, ref string) (*ports.Image, error) {
	if hasPrefixFold(ref, "data:") {
		return c.source.Fetch(ctx, ref)
	}

	logger := logging.FromContext(ctx, c.logger)
	key := CacheKey(ref)

	img, err := c.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Image cache read failed", "err", err)
	} else if img != nil {
		c.recorder.FetchCompleted(OutcomeHit)
		return img, nil
	}

	img, err = c.source.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, img, c.ttl); err != nil {
		logger.Warn("Image cache write failed", "err", err)
	}
	return img, nil
}

// CacheKey derives the cache key of a reference.
func CacheKey(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return hex.EncodeToString(sum[:])
}
