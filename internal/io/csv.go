package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// newCSVReader applies rc to a csv.Reader over r. Every row must have as
// many fields as the first one.
func newCSVReader(r io.Reader, rc config.ReadConfig) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = rc.CSVDelimiter
	if rc.CSVComment != 0 {
		reader.Comment = rc.CSVComment
	}
	return reader
}

func wrapCSVError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("CSV parse error in '%s' on line %d, column %d: %w", path, parseErr.Line, parseErr.Column, err)
	}
	return fmt.Errorf("failed to read CSV rows from '%s': %w", path, err)
}

// CSVRows lazily yields the rows of a CSV file, header first. The file is
// opened when iteration starts and closed when it ends or the consumer stops.
// The first error is yielded once and ends the sequence.
func CSVRows(path string, rc config.ReadConfig) iter.Seq2[[]string, error] {
	rc.ApplyDefaults()
	return func(yield func([]string, error) bool) {
		logging.Logf(logging.Debug, "CSV reading file: %s (Delimiter: '%c', Comment: '%c')", path, rc.CSVDelimiter, rc.CSVComment)
		f, err := os.Open(path)
		if err != nil {
			yield(nil, fmt.Errorf("failed to open CSV file '%s': %w", path, err))
			return
		}
		defer f.Close()

		src, err := decodingReader(f, rc.Encoding)
		if err != nil {
			yield(nil, fmt.Errorf("failed to decode '%s': %w", path, err))
			return
		}
		reader := newCSVReader(src, rc)
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, wrapCSVError(path, err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// CSVDicts lazily yields one header-keyed map per data row. The header row is
// consumed, so an empty or header-only file yields nothing. When a header is
// repeated the last column wins.
func CSVDicts(path string, rc config.ReadConfig) iter.Seq2[map[string]string, error] {
	return func(yield func(map[string]string, error) bool) {
		var header []string
		for row, err := range CSVRows(path, rc) {
			if err != nil {
				yield(nil, err)
				return
			}
			if header == nil {
				header = row
				continue
			}
			rec := make(map[string]string, len(header))
			for i, name := range header {
				rec[name] = row[i]
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// CSVRecordReader reads header-keyed records from a CSV file.
type CSVRecordReader struct {
	Config config.ReadConfig
}

// Read implements RecordReader. Header names must be non-empty and unique.
func (cr *CSVRecordReader) Read(path string) ([]Record, error) {
	var header []string
	records := make([]Record, 0)
	for row, err := range CSVRows(path, cr.Config) {
		if err != nil {
			return nil, err
		}
		if header == nil {
			if err := checkHeader(path, row); err != nil {
				return nil, err
			}
			header = row
			continue
		}
		rec := newRecord(len(header))
		for i, name := range header {
			rec.set(name, row[i])
		}
		records = append(records, rec)
	}
	if header == nil {
		logging.Logf(logging.Debug, "CSV file '%s' is empty", path)
	}
	logging.Logf(logging.Debug, "CSVRecordReader loaded %d records from %s", len(records), path)
	return records, nil
}

// checkHeader rejects header rows that cannot name parameters.
func checkHeader(path string, header []string) error {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			return dataErr(path, -1, "empty header in column %d", i+1)
		}
		if prev, dup := seen[name]; dup {
			return dataErr(path, -1, "duplicate header '%s' in columns %d and %d", name, prev+1, i+1)
		}
		seen[name] = i
	}
	return nil
}
