// Package redis provides a Redis-backed image cache.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/lectern/pkg/ports"
)

const (
	// DefaultPrefix namespaces every key written by the cache.
	DefaultPrefix = "lectern:img:"

	// DefaultTTL applies when Set is called with a zero ttl.
	DefaultTTL = time.Hour

	fieldData = "data"
	fieldMIME = "mime"
)

// Cache implements ports.ImageCache on a Redis hash per image.
type Cache struct {
	client backend.UniversalClient
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New connects to addr and returns a cache. The connection is checked with PING.
func New(ctx context.Context, addr string, opts ...Option) (*Cache, error) {
	client := backend.NewClient(&backend.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return NewFromClient(client, opts...), nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached image or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*ports.Image, error) {
	fields, err := c.client.HGetAll(ctx, c.prefix+key).Result()
	if errors.Is(err, backend.Nil) || (err == nil && len(fields) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return &ports.Image{Data: []byte(fields[fieldData]), MIMEType: fields[fieldMIME]}, nil
}

// Set stores img under key for ttl, or the cache default when ttl is zero.
func (c *Cache) Set(ctx context.Context, key string, img *ports.Image, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	k := c.prefix + key
	_, err := c.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, fieldData, img.Data, fieldMIME, img.MIMEType)
		pipe.Expire(ctx, k, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
