package config

// Format names how a fixture file is decoded.
type Format string

// Supported formats.
const (
	FormatAuto    Format = ""         // Detect from the file extension.
	FormatText    Format = "text"     // Raw text, the fallback for unknown extensions.
	FormatJSON    Format = "json"     // A single JSON document.
	FormatJSONL   Format = "jsonl"    // One JSON document per line.
	FormatCSV     Format = "csv"      // Header row followed by data rows.
	FormatCSVDict Format = "csv_dict" // Same file shape as csv, read as header-keyed maps.
	FormatYAML    Format = "yaml"     // A single YAML document.
	FormatXLSX    Format = "xlsx"     // First row of a sheet is the header.
)

// Defaults and the names of the configuration channels.
const (
	// DefaultFixturesDir is used by both resolution contexts when nothing overrides it.
	DefaultFixturesDir = "tests/fixtures"
	// EnvFixturesPath is consulted only when resolving at case-loading time.
	EnvFixturesPath = "FIXTURES_FIXTURES_PATH"
	// FlagFixturesPath is consulted only by the runtime context.
	FlagFixturesPath = "fixtures-fixtures-path"

	DefaultIDField      = "id"
	DefaultEncoding     = "utf-8"
	DefaultCSVDelimiter = ','
)

// extensionFormats maps lower-case file extensions to their format.
var extensionFormats = map[string]Format{
	".json":  FormatJSON,
	".jsonl": FormatJSONL,
	".csv":   FormatCSV,
	".yaml":  FormatYAML,
	".yml":   FormatYAML,
	".xlsx":  FormatXLSX,
}

// ParamConfig carries the settings of one parametrization request.
type ParamConfig struct {
	// File is the data file, relative to the fixtures directory. Required.
	File string
	// Format overrides extension detection when set.
	Format Format
	// FixturesDir overrides the environment variable and the default directory.
	FixturesDir string
	// IDField names the column or key holding case identifiers.
	// Nil means DefaultIDField; a pointer to "" disables id extraction.
	IDField *string
	// IDs, when non-nil, replace any identifiers found in the file.
	IDs []string
	// Encoding of the data file. Defaults to DefaultEncoding.
	Encoding string
	// CSVDelimiter for csv sources. Zero means DefaultCSVDelimiter.
	CSVDelimiter rune
	// Sheet selects the xlsx sheet. Empty means the active sheet.
	Sheet string
	// Filter is an optional boolean expression evaluated against each record.
	Filter string
	// Parallel marks every generated subtest parallel.
	Parallel bool
}

// ReadConfig carries per-read decoding settings.
type ReadConfig struct {
	Encoding     string
	CSVDelimiter rune
	CSVComment   rune // Zero disables comment lines.
	Sheet        string
}
