package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/lectern/pkg/ports"
)

// ImageCacheContractTest is a reusable test suite that verifies if an adapter complies with ports.ImageCache.
func ImageCacheContractTest(t *testing.T, cache ports.ImageCache) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Miss", func(t *testing.T) {
		img, err := cache.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error on miss: %v", err)
		}
		if img != nil {
			t.Errorf("expected nil image on miss, got %+v", img)
		}
	})

	t.Run("Set_Get", func(t *testing.T) {
		want := &ports.Image{Data: []byte{0x89, 'P', 'N', 'G'}, MIMEType: "image/png"}
		if err := cache.Set(ctx, "logo", want, time.Minute); err != nil {
			t.Fatalf("unexpected error setting image: %v", err)
		}

		got, err := cache.Get(ctx, "logo")
		if err != nil {
			t.Fatalf("unexpected error getting image: %v", err)
		}
		if got == nil {
			t.Fatal("expected a hit after Set")
		}
		if string(got.Data) != string(want.Data) {
			t.Errorf("data mismatch. got %q, want %q", got.Data, want.Data)
		}
		if got.MIMEType != want.MIMEType {
			t.Errorf("mime mismatch. got %q, want %q", got.MIMEType, want.MIMEType)
		}
	})

	t.Run("Set_Overwrites", func(t *testing.T) {
		_ = cache.Set(ctx, "swap", &ports.Image{Data: []byte("a"), MIMEType: "image/gif"}, time.Minute)
		_ = cache.Set(ctx, "swap", &ports.Image{Data: []byte("b"), MIMEType: "image/jpeg"}, time.Minute)

		got, err := cache.Get(ctx, "swap")
		if err != nil || got == nil {
			t.Fatalf("expected a hit, got %v / %v", got, err)
		}
		if string(got.Data) != "b" || got.MIMEType != "image/jpeg" {
			t.Errorf("expected latest value, got %q %q", got.Data, got.MIMEType)
		}
	})
}
