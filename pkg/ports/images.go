package ports

import (
	"context"
	"time"
)

// Image is a resolved picture.
type Image struct {
	Data     []byte
	MIMEType string
}

// ImageSource resolves an image reference to bytes.
type ImageSource interface {
	// Fetch returns the image behind ref.
	// Failures are returned wrapped in domain.ErrUpstreamFetch.
	Fetch(ctx context.Context, ref string) (*Image, error)
}

// ImageCache persists fetched images between requests.
type ImageCache interface {
	// Get returns the cached image, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*Image, error)

	// Set stores the image for at most ttl. A zero ttl uses the cache default.
	Set(ctx context.Context, key string, img *Image, ttl time.Duration) error
}
