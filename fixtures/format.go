package fixtures

import "github.com/brian-c-moore/fixtures-fixtures/internal/config"

// Format names how a fixture file is decoded.
type Format = config.Format

const (
	FormatAuto    = config.FormatAuto
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatJSONL   = config.FormatJSONL
	FormatCSV     = config.FormatCSV
	FormatCSVDict = config.FormatCSVDict
	FormatYAML    = config.FormatYAML
	FormatXLSX    = config.FormatXLSX
)

// DetectFormat infers a format from the extension of name. Unknown
// extensions are text.
func DetectFormat(name string) Format {
	if f, ok := config.DetectFormat(name); ok {
		return f
	}
	return FormatText
}
