package fixtures

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlob(t *testing.T) {
	fx, dir := newTempFixtures(t)
	writeFixture(t, dir, "b.json", "{}")
	writeFixture(t, dir, "a.json", "{}")
	writeFixture(t, dir, "nested/deep/c.json", "{}")
	writeFixture(t, dir, "nested/notes.txt", "x")

	matches, err := fx.Glob("**/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json", "nested/deep/c.json"}, matches)

	matches, err = fx.Glob("*.yaml")
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = fx.Glob("[")
	assert.Error(t, err)

	missing, err := New(WithDir(filepath.Join(dir, "absent")))
	require.NoError(t, err)
	_, err = missing.Glob("*")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForEachFile(t *testing.T) {
	fx, err := New()
	require.NoError(t, err)

	var visited []string
	ForEachFile(t, fx, "**/*.{csv,json}", func(t *testing.T, rel string) {
		visited = append(visited, rel)
		_, err := fx.PathFor(rel)
		assert.NoError(t, err)
	})
	assert.Equal(t, []string{"configs/basic.json", "math/add.csv"}, visited)
}
