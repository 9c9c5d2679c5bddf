package io

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// isUTF8 reports whether name means UTF-8, which needs no transcoding.
func isUTF8(name string) bool {
	switch normalizeEncodingName(name) {
	case "", "utf8":
		return true
	}
	return false
}

func normalizeEncodingName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
}

// lookupEncoding resolves an encoding name through the IANA registry first
// and the WHATWG labels second, retrying with separators stripped so that
// spellings such as "latin-1" and "ISO_8859_1" both work.
func lookupEncoding(name string) (encoding.Encoding, error) {
	candidates := []string{strings.TrimSpace(name), normalizeEncodingName(name)}
	for _, candidate := range candidates {
		if enc, err := ianaindex.IANA.Encoding(candidate); err == nil && enc != nil {
			return enc, nil
		}
		if enc, err := htmlindex.Get(candidate); err == nil && enc != nil {
			return enc, nil
		}
	}
	return nil, fmt.Errorf("unsupported encoding '%s'", name)
}

// ValidateEncoding reports an error for encoding names that cannot be used.
func ValidateEncoding(name string) error {
	if isUTF8(name) {
		return nil
	}
	_, err := lookupEncoding(name)
	return err
}

// DecodeText converts raw bytes in the named encoding to UTF-8 text.
// UTF-8 input is validated rather than repaired.
func DecodeText(raw []byte, encodingName string) (string, error) {
	if isUTF8(encodingName) {
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("content is not valid utf-8")
		}
		return string(raw), nil
	}
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode content as %s: %w", encodingName, err)
	}
	return string(out), nil
}

// decodingReader wraps r so that it yields UTF-8.
func decodingReader(r io.Reader, encodingName string) (io.Reader, error) {
	if isUTF8(encodingName) {
		return r, nil
	}
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
