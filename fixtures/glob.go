package fixtures

import (
	"fmt"
	"os"
	"sort"
	"testing"

	"github.com/bmatcuk/doublestar/v4"

	fxio "github.com/brian-c-moore/fixtures-fixtures/internal/io"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// Glob returns the files below the base directory matching pattern, which
// may use "**". Results are slash-separated, relative and sorted.
func (f *Fixtures) Glob(pattern string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern '%s': %w", pattern, doublestar.ErrBadPattern)
	}
	if err := fxio.CheckExists(f.dir, "."); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(f.dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob '%s' in %s: %w", pattern, f.dir, err)
	}
	sort.Strings(matches)
	logging.Logf(logging.Debug, "Glob %s in %s matched %d files", pattern, f.dir, len(matches))
	return matches, nil
}

// ForEachFile runs fn as one subtest per file matching pattern, named by its
// relative path. No match fails t.
func ForEachFile(t *testing.T, fx *Fixtures, pattern string, fn func(t *testing.T, rel string)) {
	t.Helper()
	matches, err := fx.Glob(pattern)
	if err != nil {
		t.Fatalf("fixtures glob %s: %v", pattern, err)
	}
	if len(matches) == 0 {
		t.Fatalf("no fixture files match %s in %s", pattern, fx.Dir())
	}
	for _, rel := range matches {
		t.Run(rel, func(t *testing.T) {
			fn(t, rel)
		})
	}
}
