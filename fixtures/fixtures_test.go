package fixtures

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesDefaultDirectory(t *testing.T) {
	fx, err := New()
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, DefaultDir), fx.Dir())

	cfg, err := fx.ReadJSON("configs", "basic.json")
	require.NoError(t, err)
	assert.Equal(t, "basic", cfg.(map[string]interface{})["name"])
}

func TestPathFor(t *testing.T) {
	fx, dir := newTempFixtures(t)
	writeFixture(t, dir, "data/present.txt", "hello")

	path, err := fx.PathFor("data", "present.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "present.txt"), path)

	_, err = fx.PathFor("missing.txt")
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing.txt", nf.Ref)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.txt")

	assert.Equal(t, filepath.Join(dir, "missing.txt"), fx.Path("missing.txt"))
}

func TestPathOnMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "created-later")
	fx, err := New(WithDir(dir))
	require.NoError(t, err)
	assert.Equal(t, dir, fx.Dir())
	assert.Equal(t, filepath.Join(dir, "out.json"), fx.Path("out.json"))
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	_, err := New(WithDir(t.TempDir()), WithEncoding("no-such-charset"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")

	_, err = New(WithDir(t.TempDir()), WithCSVDelimiter('"'))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Read.CSVDelimiter")
}

func TestWithCopiesSettings(t *testing.T) {
	fx, dir := newTempFixtures(t)
	writeFixture(t, dir, "latin.txt", "caf\xe9")

	_, err := fx.Read("latin.txt")
	require.Error(t, err, "utf-8 is the default")

	latin := fx.With(WithEncoding("latin-1"))
	text, err := latin.Read("latin.txt")
	require.NoError(t, err)
	assert.Equal(t, "café", text)
	assert.Equal(t, fx.Dir(), latin.Dir())

	other := t.TempDir()
	moved := fx.With(WithDir(other))
	assert.Equal(t, other, moved.Dir())
	assert.Equal(t, dir, fx.Dir(), "With must not modify the receiver")

	broken := fx.With(WithEncoding("no-such-charset"))
	_, err = broken.ReadBytes("latin.txt")
	assert.Error(t, err)
	_, err = broken.PathFor("latin.txt")
	assert.Error(t, err)
}
