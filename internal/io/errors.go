package io

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/brian-c-moore/fixtures-fixtures/internal/util"
)

// Error categories. Every typed error below matches exactly one of them with errors.Is.
var (
	// ErrNotFound marks a missing fixture file or directory.
	ErrNotFound = errors.New("fixture not found")
	// ErrUnknownFormat marks a file whose format could not be determined.
	ErrUnknownFormat = errors.New("unknown fixture format")
	// ErrInvalidData marks a data file that cannot be turned into test cases.
	ErrInvalidData = errors.New("invalid fixture data")
	// ErrMissingDependency marks a format whose support was compiled out.
	ErrMissingDependency = errors.New("missing optional dependency")
)

// NotFoundError reports a fixture reference that does not resolve to an existing path.
type NotFoundError struct {
	Ref  string // reference as given by the caller, relative to the fixtures directory
	Path string // absolute path that was checked
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fixture %s does not exist at %s", e.Ref, e.Path)
}

// Is lets errors.Is match both ErrNotFound and fs.ErrNotExist.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == fs.ErrNotExist
}

// FormatError reports a file whose format cannot be detected or used.
type FormatError struct {
	Name   string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Name)
	}
	return fmt.Sprintf("cannot auto-detect format for file: %s", e.Name)
}

func (e *FormatError) Unwrap() error { return ErrUnknownFormat }

// DataError reports a structural problem in a data file. Index is the
// zero-based record position, or -1 when the problem concerns the whole file.
type DataError struct {
	Path  string
	Index int
	Msg   string
}

func (e *DataError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: record %d: %s", e.Path, e.Index, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *DataError) Unwrap() error { return ErrInvalidData }

// LineError reports a JSONL line that failed to parse. Err is the parser's
// own error, reachable with errors.As.
type LineError struct {
	Path string
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line: %s)", e.Path, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

func newLineError(path string, line int, text []byte, err error) *LineError {
	return &LineError{Path: path, Line: line, Text: util.Snippet(text), Err: err}
}

// CheckExists returns a *NotFoundError when path does not exist.
// Other stat failures are returned wrapped.
func CheckExists(path, ref string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &NotFoundError{Ref: ref, Path: path}
		}
		return fmt.Errorf("failed to stat fixture '%s': %w", path, err)
	}
	return nil
}

func dataErr(path string, index int, format string, args ...interface{}) *DataError {
	return &DataError{Path: path, Index: index, Msg: fmt.Sprintf(format, args...)}
}
