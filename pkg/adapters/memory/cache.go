package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lectern/pkg/ports"
)

// DefaultTTL applies when Set is called with a zero ttl.
const DefaultTTL = 10 * time.Minute

type entry struct {
	img     ports.Image
	expires time.Time
}

// Cache implements ports.ImageCache in memory.
// Expired entries are dropped lazily on read. Safe for concurrent use.
type Cache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Get returns a copy of the cached image, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*ports.Image, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, nil
	}

	img := e.img
	img.Data = append([]byte(nil), e.img.Data...)
	return &img, nil
}

// Set stores a copy of img.
func (c *Cache) Set(ctx context.Context, key string, img *ports.Image, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	stored := *img
	stored.Data = append([]byte(nil), img.Data...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{img: stored, expires: c.now().Add(ttl)}
	return nil
}

// Len reports how many entries are held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
