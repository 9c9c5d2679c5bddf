package fixtures

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
	"github.com/brian-c-moore/fixtures-fixtures/internal/util"
)

const (
	// DefaultDir is the fixtures directory, relative to the working
	// directory, used when nothing overrides it.
	DefaultDir = config.DefaultFixturesDir
	// EnvFixturesPath is read by ResolveCollectionDir only.
	EnvFixturesPath = config.EnvFixturesPath
	// FlagFixturesPath is the flag read by ResolveRuntimeDir only.
	FlagFixturesPath = config.FlagFixturesPath
)

func init() {
	flag.String(FlagFixturesPath, "", "base directory for fixture files (default \""+DefaultDir+"\")")
}

// flagValue returns the current value of the fixtures path flag.
func flagValue() string {
	f := flag.Lookup(FlagFixturesPath)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// ResolveRuntimeDir returns the fixtures directory for reads inside a
// running test: override, then the -fixtures-fixtures-path flag, then
// DefaultDir. The result is absolute and may not exist.
func ResolveRuntimeDir(override string) (string, error) {
	switch {
	case override != "":
		return absDir(override, "override")
	case flagValue() != "":
		return absDir(flagValue(), "-"+FlagFixturesPath)
	default:
		return absDir(DefaultDir, "default")
	}
}

// ResolveCollectionDir returns the fixtures directory used when loading
// cases: explicit, then $FIXTURES_FIXTURES_PATH, then DefaultDir. The
// result is absolute and may not exist.
func ResolveCollectionDir(explicit string) (string, error) {
	if explicit != "" {
		return absDir(explicit, "explicit directory")
	}
	if env := os.Getenv(EnvFixturesPath); env != "" {
		return absDir(env, "$"+EnvFixturesPath)
	}
	return absDir(DefaultDir, "default")
}

func absDir(dir, source string) (string, error) {
	abs, err := filepath.Abs(util.ExpandEnvUniversal(dir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve fixtures directory '%s': %w", dir, err)
	}
	logging.Logf(logging.Debug, "Fixtures directory from %s: %s", source, abs)
	return abs, nil
}
