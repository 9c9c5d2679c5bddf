package fixtures

import fxio "github.com/brian-c-moore/fixtures-fixtures/internal/io"

var (
	ErrNotFound          = fxio.ErrNotFound
	ErrUnknownFormat     = fxio.ErrUnknownFormat
	ErrInvalidData       = fxio.ErrInvalidData
	ErrMissingDependency = fxio.ErrMissingDependency
)

type (
	// NotFoundError names a fixture reference that does not exist.
	NotFoundError = fxio.NotFoundError
	// FormatError names a file whose format cannot be detected or parametrized.
	FormatError = fxio.FormatError
	// DataError describes a data file that cannot become test cases.
	DataError = fxio.DataError
	// LineError locates a malformed JSONL line.
	LineError = fxio.LineError
)
