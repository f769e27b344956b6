// Package testutils holds fixtures shared by adapter tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo seeds a temp dir with decks (relative path to raw content)
// and initializes a Loam repository over it. It returns the absolute root.
func SetupTestRepo(t *testing.T, decks map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	root, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	for name, content := range decks {
		WriteDeck(t, root, name, content)
	}

	repo, err := loam.Init(root, opts...)
	require.NoError(t, err, "failed to init loam repo")
	return root, repo
}

// WriteDeck writes one raw deck file under root, creating parent directories.
func WriteDeck(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
