package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// DecodeJSON parses a single JSON document. The decoder's own error is
// returned unchanged so callers can inspect *json.SyntaxError.
func DecodeJSON(data []byte) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONRecordReader reads a JSON array of objects, keeping key order.
type JSONRecordReader struct {
	Encoding string
}

// Read implements RecordReader.
func (jr *JSONRecordReader) Read(path string) ([]Record, error) {
	logging.Logf(logging.Debug, "JSONRecordReader reading file: %s", path)
	data, err := readDecoded(path, jr.Encoding)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode JSON in '%s': %w", path, io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, dataErr(path, -1, "JSON data must be a list of objects")
	}

	records := make([]Record, 0)
	for index := 0; dec.More(); index++ {
		rec, err := decodeJSONObject(dec, path, index)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode JSON in '%s': unexpected data after top-level array", path)
	}

	logging.Logf(logging.Debug, "JSONRecordReader loaded %d records from %s", len(records), path)
	return records, nil
}

// decodeJSONObject reads one object from dec, field by field.
func decodeJSONObject(dec *json.Decoder, path string, index int) (Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return Record{}, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Record{}, dataErr(path, index, "expected an object, found %s", describeJSONToken(tok))
	}

	rec := newRecord(8)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Record{}, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
		}
		key, _ := keyTok.(string)
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return Record{}, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
		}
		rec.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, fmt.Errorf("failed to decode JSON in '%s': %w", path, err)
	}
	return rec, nil
}

func describeJSONToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return fmt.Sprintf("'%s'", v)
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
