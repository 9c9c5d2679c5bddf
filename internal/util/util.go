package util

import (
	"os"
	"regexp"
	"strings"
)

// windowsVarPattern matches %VAR% references.
var windowsVarPattern = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// ExpandEnvUniversal expands $VAR, ${VAR} and %VAR% references in s.
// Unknown variables expand to the empty string, as os.ExpandEnv does.
func ExpandEnvUniversal(s string) string {
	if !strings.ContainsAny(s, "$%") {
		return s
	}
	expanded := os.ExpandEnv(s)
	return windowsVarPattern.ReplaceAllStringFunc(expanded, func(match string) string {
		if value, ok := os.LookupEnv(match[1 : len(match)-1]); ok {
			return value
		}
		return ""
	})
}

// Snippet shortens b for use in log lines and error messages.
// Anything past 80 runes is replaced by "...".
func Snippet(b []byte) string {
	const maxLen = 80
	if b == nil {
		return ""
	}
	runes := []rune(strings.TrimSpace(string(b)))
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return string(runes)
}

// IsBlank reports whether b holds nothing but whitespace.
func IsBlank(b []byte) bool {
	return len(strings.TrimSpace(string(b))) == 0
}
