package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lectern/internal/config"
	"github.com/aretw0/lectern/internal/logging"
)

const hello = `{"title":"Hello Deck","slides":[{"title":"Intro","notes":"say hi","objects":[{"text":"Hello"}]}]}`

func newRuntime(t *testing.T, mutate func(*config.Config)) *Runtime {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return rt
}

func TestNewRuntime_Defaults(t *testing.T) {
	rt := newRuntime(t, nil)
	assert.NotNil(t, rt.Service)
	assert.NotNil(t, rt.Metrics)
	assert.Nil(t, rt.Service.Decks())
}

func TestNewRuntime_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rt := newRuntime(t, func(c *config.Config) {
		c.Cache.RedisAddr = mr.Addr()
	})
	assert.Len(t, rt.closers, 1)
}

func TestNewRuntime_RedisFallback(t *testing.T) {
	rt := newRuntime(t, func(c *config.Config) {
		c.Cache.RedisAddr = "127.0.0.1:1"
		c.Metrics = false
	})
	assert.Empty(t, rt.closers)
	assert.Nil(t, rt.Metrics)
}

func TestNewRuntime_DecksDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.json"), []byte(hello), 0o644))

	rt := newRuntime(t, func(c *config.Config) { c.DecksDir = dir })
	require.NotNil(t, rt.Service.Decks())

	decks, err := rt.Service.Decks().List(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "intro", decks[0].ID)
}

func TestRender_ToFile(t *testing.T) {
	rt := newRuntime(t, nil)
	out := filepath.Join(t.TempDir(), "deck.pptx")

	path, art, err := Render(context.Background(), rt.Service, strings.NewReader(hello), out, nil, true)
	require.NoError(t, err)
	assert.Equal(t, out, path)
	assert.Equal(t, 1, art.Slides)

	md, err := Inspect(out)
	require.NoError(t, err)
	assert.Contains(t, md, "# Hello Deck")
	assert.Contains(t, md, "## 1.\n")
	assert.Contains(t, md, `Text: "Hello"`)
	assert.Contains(t, md, "> say hi")
}

func TestRender_DefaultFilename(t *testing.T) {
	t.Chdir(t.TempDir())
	rt := newRuntime(t, nil)

	path, _, err := Render(context.Background(), rt.Service, strings.NewReader(hello), "", nil, false)
	require.NoError(t, err)
	assert.Equal(t, "Hello_Deck.pptx", path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRender_Stdout(t *testing.T) {
	rt := newRuntime(t, nil)

	_, _, err := Render(context.Background(), rt.Service, strings.NewReader(hello), "-", &bytes.Buffer{}, true)
	assert.ErrorIs(t, err, ErrTerminalOutput)

	var buf bytes.Buffer
	path, _, err := Render(context.Background(), rt.Service, strings.NewReader(hello), "-", &buf, false)
	require.NoError(t, err)
	assert.Equal(t, "-", path)

	md, err := InspectBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, md, "Hello")
}

func TestInspect_NotADeck(t *testing.T) {
	_, err := InspectBytes([]byte("plain text"))
	assert.Error(t, err)
}
