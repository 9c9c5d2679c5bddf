package fixtures

import "iter"

// Interfaces describing the reader surface, for helpers that accept any
// implementation. *Fixtures satisfies all of them.

// FixturePath locates files under a fixtures directory. Path only joins;
// PathFor also requires the file to exist.
type FixturePath interface {
	Dir() string
	Path(segments ...string) string
	PathFor(segments ...string) (string, error)
}

// FixtureReader reads a fixture file whole, as text in the configured
// encoding or as raw bytes.
type FixtureReader interface {
	Read(segments ...string) (string, error)
	ReadBytes(segments ...string) ([]byte, error)
}

// JSONFixtureReader decodes a JSON fixture file into plain Go values.
type JSONFixtureReader interface {
	ReadJSON(segments ...string) (interface{}, error)
}

// JSONLFixtureReader decodes a JSON Lines fixture file, one value per
// non-blank line.
type JSONLFixtureReader interface {
	ReadJSONL(segments ...string) ([]interface{}, error)
}

// CSVFixtureReader streams the rows of a CSV fixture file, header included.
type CSVFixtureReader interface {
	ReadCSV(segments ...string) (iter.Seq2[[]string, error], error)
}

// CSVDictFixtureReader streams the data rows of a CSV fixture file keyed by
// the header row.
type CSVDictFixtureReader interface {
	ReadCSVDict(segments ...string) (iter.Seq2[map[string]string, error], error)
}

// YAMLFixtureReader decodes a single-document YAML fixture file. Builds
// tagged fixtures_noyaml return ErrMissingDependency instead.
type YAMLFixtureReader interface {
	ReadYAML(segments ...string) (interface{}, error)
}

var (
	_ FixturePath          = (*Fixtures)(nil)
	_ FixtureReader        = (*Fixtures)(nil)
	_ JSONFixtureReader    = (*Fixtures)(nil)
	_ JSONLFixtureReader   = (*Fixtures)(nil)
	_ CSVFixtureReader     = (*Fixtures)(nil)
	_ CSVDictFixtureReader = (*Fixtures)(nil)
	_ YAMLFixtureReader    = (*Fixtures)(nil)
)
