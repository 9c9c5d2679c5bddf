//go:build fixtures_noyaml

package io

import "fmt"

// YAMLSupported reports whether YAML support is compiled in.
const YAMLSupported = false

func errYAMLDisabled() error {
	return fmt.Errorf("YAML support is not available in this build (rebuild without the 'fixtures_noyaml' tag): %w", ErrMissingDependency)
}

// DecodeYAML always fails in builds without YAML support.
func DecodeYAML(data []byte) (interface{}, error) {
	return nil, errYAMLDisabled()
}

// DecodeYAMLInto always fails in builds without YAML support.
func DecodeYAMLInto(data []byte, v interface{}) error {
	return errYAMLDisabled()
}

// YAMLRecordReader always fails in builds without YAML support.
type YAMLRecordReader struct {
	Encoding string
}

// Read implements RecordReader.
func (yr *YAMLRecordReader) Read(path string) ([]Record, error) {
	return nil, errYAMLDisabled()
}
