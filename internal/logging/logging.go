// Package logging is the level-gated logger shared by the fixture readers,
// the parametrization engine and the CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
)

// Log levels, from quietest to noisiest.
const (
	None = iota
	Error
	Warning
	Info
	Debug
)

// EnvLogLevel names the environment variable read once at start-up to pick
// the initial level. Tests stay quiet unless it is set.
const EnvLogLevel = "FIXTURES_LOG_LEVEL"

var currentLevel atomic.Int32                                              // Current level, read on every call.
var logger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds) // Shared by every package.

func init() {
	// Warning by default so passing tests print nothing.
	currentLevel.Store(Warning)
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		// A bad value is ignored here; the CLI reports its own --log-level errors.
		if level, err := ParseLevel(v); err == nil {
			currentLevel.Store(int32(level))
		}
	}
}

// SetLevel sets the global level, clamped to [None, Debug].
func SetLevel(level int) {
	if level < None {
		level = None
	} else if level > Debug {
		level = Debug
	}
	currentLevel.Store(int32(level))
	// Announce only at Debug; the new level already applies to this call.
	if level >= Debug {
		logf(Debug, "Log level set to %d", level)
	}
}

// GetLevel returns the global level.
func GetLevel() int {
	return int(currentLevel.Load())
}

// ParseLevel converts a case-insensitive level name. Unknown names yield
// Warning together with an error.
func ParseLevel(levelStr string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "none", "off":
		return None, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warning, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return Warning, fmt.Errorf("invalid log level string: '%s'", levelStr)
	}
}

// SetupLogging applies levelStr and returns the level actually set.
func SetupLogging(levelStr string) int {
	level, err := ParseLevel(levelStr)
	if err != nil {
		// Logged at the old level, before the fallback takes effect.
		logf(Warning, "Invalid log level '%s' provided, defaulting to 'warn'. Error: %v", levelStr, err)
	}
	SetLevel(level)
	return level
}

// SetOutput redirects the global logger.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func logf(level int, format string, v ...interface{}) {
	// Messages noisier than the current level are dropped before formatting.
	if int32(level) > currentLevel.Load() {
		return
	}

	var prefix string
	switch level {
	case Error:
		prefix = "[ERROR] "
	case Warning:
		prefix = "[WARN] "
	case Info:
		prefix = "[INFO] "
	case Debug:
		prefix = "[DEBUG] "
	default:
		prefix = "[UNKN] "
	}

	// caller of Logf, two frames up
	if level == Debug {
		if pc, file, line, ok := runtime.Caller(2); ok {
			funcName := "???"
			if f := runtime.FuncForPC(pc); f != nil {
				funcName = filepath.Base(f.Name())
			}
			prefix = fmt.Sprintf("%s%s:%d:%s ", prefix, filepath.Base(file), line, funcName)
		} else {
			prefix += "???:0:??? "
		}
	}

	logger.Println(prefix + fmt.Sprintf(format, v...))
}

// Logf logs a formatted message when level is enabled. At Debug the
// message is prefixed with the caller's file, line and function.
func Logf(level int, format string, v ...interface{}) {
	logf(level, format, v...)
}
