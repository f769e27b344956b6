package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/pkg/ports"
	"github.com/aretw0/lectern/pkg/ports/tests"
)

func TestMemoryCache_Contract(t *testing.T) {
	tests.ImageCacheContractTest(t, NewCache())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewCache()
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", &ports.Image{Data: []byte("x"), MIMEType: "image/png"}, time.Second))

	img, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, img)

	now = now.Add(2 * time.Second)
	img, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, img)
	assert.Zero(t, c.Len())
}

func TestMemoryCache_Isolation(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	src := &ports.Image{Data: []byte("abc"), MIMEType: "image/png"}
	require.NoError(t, c.Set(ctx, "k", src, 0))

	src.Data[0] = 'z'
	got, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(got.Data))

	got.Data[0] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again.Data))
}
