package config

import (
	"path/filepath"
	"strings"
)

// DetectFormat infers the format from the extension of name.
// The boolean is false when the extension is not recognised.
func DetectFormat(name string) (Format, bool) {
	f, ok := extensionFormats[strings.ToLower(filepath.Ext(name))]
	return f, ok
}

// ApplyDefaults fills unset fields of cfg.
func (cfg *ParamConfig) ApplyDefaults() {
	if cfg.IDField == nil {
		id := DefaultIDField
		cfg.IDField = &id
	}
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	if cfg.CSVDelimiter == 0 {
		cfg.CSVDelimiter = DefaultCSVDelimiter
	}
	cfg.Format = Format(strings.ToLower(string(cfg.Format)))
}

// ReadSettings returns the decoding settings implied by cfg.
func (cfg *ParamConfig) ReadSettings() ReadConfig {
	return ReadConfig{
		Encoding:     cfg.Encoding,
		CSVDelimiter: cfg.CSVDelimiter,
		Sheet:        cfg.Sheet,
	}
}

// ApplyDefaults fills unset fields of rc.
func (rc *ReadConfig) ApplyDefaults() {
	if rc.Encoding == "" {
		rc.Encoding = DefaultEncoding
	}
	if rc.CSVDelimiter == 0 {
		rc.CSVDelimiter = DefaultCSVDelimiter
	}
}

// IDFieldName returns the configured id field, or "" when extraction is disabled.
func (cfg *ParamConfig) IDFieldName() string {
	if cfg.IDField == nil {
		return DefaultIDField
	}
	return *cfg.IDField
}
