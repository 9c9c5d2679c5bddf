package io

import (
	"fmt"
	"os"
)

// readFile reads path in binary mode.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return data, nil
}

// ReadBytes returns the raw content of path.
func ReadBytes(path string) ([]byte, error) {
	return readFile(path)
}

// ReadText returns the content of path decoded with the named encoding.
func ReadText(path, encodingName string) (string, error) {
	raw, err := readFile(path)
	if err != nil {
		return "", err
	}
	text, err := DecodeText(raw, encodingName)
	if err != nil {
		return "", fmt.Errorf("failed to decode '%s': %w", path, err)
	}
	return text, nil
}
