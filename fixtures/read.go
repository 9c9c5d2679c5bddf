package fixtures

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	fxio "github.com/brian-c-moore/fixtures-fixtures/internal/io"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// Read returns the file as text in the configured encoding.
func (f *Fixtures) Read(segments ...string) (string, error) {
	path, rc, err := f.open(segments)
	if err != nil {
		return "", err
	}
	return fxio.ReadText(path, rc.Encoding)
}

// ReadBytes returns the raw file content.
func (f *Fixtures) ReadBytes(segments ...string) ([]byte, error) {
	path, _, err := f.open(segments)
	if err != nil {
		return nil, err
	}
	return fxio.ReadBytes(path)
}

// ReadFunc reads the raw file content and passes it to deserialize.
func ReadFunc[T any](f *Fixtures, deserialize func([]byte) (T, error), segments ...string) (T, error) {
	var zero T
	data, err := f.ReadBytes(segments...)
	if err != nil {
		return zero, err
	}
	return deserialize(data)
}

// text reads the file as UTF-8 bytes.
func (f *Fixtures) text(segments []string) ([]byte, string, error) {
	text, err := f.Read(segments...)
	if err != nil {
		return nil, "", err
	}
	return []byte(text), f.Path(segments...), nil
}

// ReadJSON parses the file as one JSON document. Decode errors are the
// *json.SyntaxError (or similar) produced by encoding/json.
func (f *Fixtures) ReadJSON(segments ...string) (interface{}, error) {
	data, _, err := f.text(segments)
	if err != nil {
		return nil, err
	}
	return fxio.DecodeJSON(data)
}

// ReadJSONInto decodes the file into v.
func (f *Fixtures) ReadJSONInto(v interface{}, segments ...string) error {
	data, _, err := f.text(segments)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// ReadJSONL parses one JSON value per non-blank line. The first malformed
// line aborts the read with a *LineError.
func (f *Fixtures) ReadJSONL(segments ...string) ([]interface{}, error) {
	data, path, err := f.text(segments)
	if err != nil {
		return nil, err
	}
	return fxio.DecodeJSONL(data, path)
}

// ReadCSV returns a lazy sequence of rows, header first. The file is opened
// when iteration starts. Values are never converted.
func (f *Fixtures) ReadCSV(segments ...string) (iter.Seq2[[]string, error], error) {
	path, rc, err := f.open(segments)
	if err != nil {
		return nil, err
	}
	return fxio.CSVRows(path, rc), nil
}

// ReadCSVDict returns a lazy sequence of header-keyed rows.
func (f *Fixtures) ReadCSVDict(segments ...string) (iter.Seq2[map[string]string, error], error) {
	path, rc, err := f.open(segments)
	if err != nil {
		return nil, err
	}
	return fxio.CSVDicts(path, rc), nil
}

// Collect drains seq, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadYAML parses the file as one YAML document. An empty file is nil.
func (f *Fixtures) ReadYAML(segments ...string) (interface{}, error) {
	data, _, err := f.text(segments)
	if err != nil {
		return nil, err
	}
	return fxio.DecodeYAML(data)
}

// ReadYAMLInto decodes the file into v using v's json struct tags.
func (f *Fixtures) ReadYAMLInto(v interface{}, segments ...string) error {
	data, _, err := f.text(segments)
	if err != nil {
		return err
	}
	return fxio.DecodeYAMLInto(data, v)
}

// ReadXLSX returns the rows of the configured sheet.
func (f *Fixtures) ReadXLSX(segments ...string) ([][]string, error) {
	path, rc, err := f.open(segments)
	if err != nil {
		return nil, err
	}
	return fxio.XLSXRows(path, rc.Sheet)
}

// Load reads the file in the format implied by its extension.
func (f *Fixtures) Load(segments ...string) (interface{}, error) {
	return f.LoadFormat(FormatAuto, segments...)
}

// LoadFormat reads the file as format, or as the detected format for
// FormatAuto. CSV sources are read eagerly.
func (f *Fixtures) LoadFormat(format Format, segments ...string) (interface{}, error) {
	if format == FormatAuto {
		format = DetectFormat(reference(segments))
	}
	logging.Logf(logging.Debug, "Loading fixture %s as %s", reference(segments), format)

	switch format {
	case config.FormatText:
		return f.Read(segments...)
	case config.FormatJSON:
		return f.ReadJSON(segments...)
	case config.FormatJSONL:
		return f.ReadJSONL(segments...)
	case config.FormatCSV:
		seq, err := f.ReadCSV(segments...)
		if err != nil {
			return nil, err
		}
		return Collect(seq)
	case config.FormatCSVDict:
		seq, err := f.ReadCSVDict(segments...)
		if err != nil {
			return nil, err
		}
		return Collect(seq)
	case config.FormatYAML:
		return f.ReadYAML(segments...)
	case config.FormatXLSX:
		return f.ReadXLSX(segments...)
	default:
		return nil, &FormatError{Name: reference(segments), Reason: fmt.Sprintf("unknown format '%s' for file", format)}
	}
}
