package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFixture creates dir/rel with content, making parent directories.
func writeFixture(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newTempFixtures returns a reader rooted at a fresh temp dir.
func newTempFixtures(t *testing.T, opts ...Option) (*Fixtures, string) {
	t.Helper()
	dir := t.TempDir()
	fx, err := New(append([]Option{WithDir(dir)}, opts...)...)
	require.NoError(t, err)
	return fx, dir
}
