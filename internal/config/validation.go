package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Knetic/govaluate"
)

var (
	knownFormats      = []Format{FormatAuto, FormatText, FormatJSON, FormatJSONL, FormatCSV, FormatCSVDict, FormatYAML, FormatXLSX}
	parametrizable    = []Format{FormatJSON, FormatJSONL, FormatCSV, FormatCSVDict, FormatYAML, FormatXLSX}
	invalidDelimiters = []rune{'"', '\r', '\n', utf8.RuneError}
)

func isValidEnumValue(value Format, allowed []Format) bool {
	lower := Format(strings.ToLower(string(value)))
	for _, a := range allowed {
		if lower == a {
			return true
		}
	}
	return false
}

// ValidFormat reports whether f names a known format.
func ValidFormat(f Format) bool {
	return isValidEnumValue(f, knownFormats)
}

// Parametrizable reports whether records can be built from files of format f.
func Parametrizable(f Format) bool {
	return isValidEnumValue(f, parametrizable)
}

// Validate checks cfg after ApplyDefaults and reports every problem at once.
func (cfg *ParamConfig) Validate() error {
	var problems []string

	if strings.TrimSpace(cfg.File) == "" {
		problems = append(problems, "- Param.File: a data file is required")
	} else if filepath.IsAbs(cfg.File) {
		problems = append(problems, fmt.Sprintf("- Param.File: '%s' must be relative to the fixtures directory", cfg.File))
	}

	if !ValidFormat(cfg.Format) {
		problems = append(problems, fmt.Sprintf("- Param.Format: unknown format '%s', must be one of %v", cfg.Format, knownFormats[1:]))
	} else if cfg.Format != FormatAuto && !Parametrizable(cfg.Format) {
		problems = append(problems, fmt.Sprintf("- Param.Format: format '%s' cannot be parametrized, use one of %v", cfg.Format, parametrizable))
	}

	problems = append(problems, validateDelimiter("Param.CSVDelimiter", cfg.CSVDelimiter)...)

	if cfg.Filter != "" {
		if _, err := govaluate.NewEvaluableExpression(cfg.Filter); err != nil {
			problems = append(problems, fmt.Sprintf("- Param.Filter: invalid expression syntax: %v", err))
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid parametrization settings:\n" + strings.Join(problems, "\n"))
	}
	return nil
}

// Validate checks rc after ApplyDefaults.
func (rc *ReadConfig) Validate() error {
	problems := validateDelimiter("Read.CSVDelimiter", rc.CSVDelimiter)
	if rc.CSVComment != 0 && rc.CSVComment == rc.CSVDelimiter {
		problems = append(problems, fmt.Sprintf("- Read.CSVComment: '%c' is also the delimiter", rc.CSVComment))
	}
	if len(problems) > 0 {
		return errors.New("invalid read settings:\n" + strings.Join(problems, "\n"))
	}
	return nil
}

func validateDelimiter(field string, r rune) []string {
	for _, bad := range invalidDelimiters {
		if r == bad {
			return []string{fmt.Sprintf("- %s: %q cannot be used as a delimiter", field, r)}
		}
	}
	if !utf8.ValidRune(r) {
		return []string{fmt.Sprintf("- %s: %q is not a valid character", field, r)}
	}
	return nil
}
