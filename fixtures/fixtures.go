package fixtures

import (
	"fmt"
	"path/filepath"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	fxio "github.com/brian-c-moore/fixtures-fixtures/internal/io"
)

// Fixtures reads files below one base directory. It is immutable; use With
// to derive a reader with different settings.
type Fixtures struct {
	dir  string
	read config.ReadConfig
	err  error // deferred from With, reported by the next read
}

type options struct {
	dir  string
	read config.ReadConfig
}

// Option configures New and With.
type Option func(*options)

// WithDir sets the base directory, taking precedence over the flag.
// $VAR and %VAR% references are expanded.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEncoding sets the text encoding, e.g. "latin-1". Default utf-8.
func WithEncoding(name string) Option {
	return func(o *options) { o.read.Encoding = name }
}

// WithCSVDelimiter sets the CSV field delimiter. Default ','.
func WithCSVDelimiter(r rune) Option {
	return func(o *options) { o.read.CSVDelimiter = r }
}

// WithCSVComment makes CSV lines starting with r comments.
func WithCSVComment(r rune) Option {
	return func(o *options) { o.read.CSVComment = r }
}

// WithSheet selects the XLSX sheet. Default is the active sheet.
func WithSheet(name string) Option {
	return func(o *options) { o.read.Sheet = name }
}

// New returns a reader rooted at the runtime fixtures directory.
func New(opts ...Option) (*Fixtures, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	dir, err := ResolveRuntimeDir(o.dir)
	if err != nil {
		return nil, err
	}
	fx := &Fixtures{dir: dir, read: o.read}
	if _, err := fx.settings(); err != nil {
		return nil, err
	}
	return fx, nil
}

// With returns a copy of f with opts applied. Invalid settings are reported
// by the first read of the copy.
func (f *Fixtures) With(opts ...Option) *Fixtures {
	o := options{read: f.read}
	for _, opt := range opts {
		opt(&o)
	}
	cp := &Fixtures{dir: f.dir, read: o.read, err: f.err}
	if o.dir != "" {
		cp.dir, cp.err = absDir(o.dir, "override")
	}
	if cp.err == nil {
		_, cp.err = cp.settings()
	}
	return cp
}

// Dir returns the absolute base directory.
func (f *Fixtures) Dir() string {
	return f.dir
}

// Path joins segments onto the base directory without checking existence,
// for files a test is about to create.
func (f *Fixtures) Path(segments ...string) string {
	return filepath.Join(append([]string{f.dir}, segments...)...)
}

// PathFor is Path for files that must already exist. A missing file is a
// *NotFoundError.
func (f *Fixtures) PathFor(segments ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := f.Path(segments...)
	if err := fxio.CheckExists(path, reference(segments)); err != nil {
		return "", err
	}
	return path, nil
}

// settings returns the validated read settings with defaults applied.
func (f *Fixtures) settings() (config.ReadConfig, error) {
	rc := f.read
	rc.ApplyDefaults()
	if err := rc.Validate(); err != nil {
		return rc, err
	}
	if err := fxio.ValidateEncoding(rc.Encoding); err != nil {
		return rc, fmt.Errorf("invalid read settings: %w", err)
	}
	return rc, nil
}

// open resolves an existing file and the settings to read it with.
func (f *Fixtures) open(segments []string) (string, config.ReadConfig, error) {
	path, err := f.PathFor(segments...)
	if err != nil {
		return "", config.ReadConfig{}, err
	}
	rc, err := f.settings()
	if err != nil {
		return "", config.ReadConfig{}, err
	}
	return path, rc, nil
}

func reference(segments []string) string {
	return filepath.ToSlash(filepath.Join(segments...))
}
