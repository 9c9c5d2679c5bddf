package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/brian-c-moore/fixtures-fixtures/fixtures"
	"github.com/brian-c-moore/fixtures-fixtures/internal/convert"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// Define common application-level errors.
var (
	ErrUsage       = errors.New("usage error")
	ErrMissingArgs = errors.New("missing required arguments")
)

// Factory variables, replaced in tests.
var (
	newFixturesFunc = fixtures.New
	loadCasesFunc   = fixtures.LoadCases
)

// AppRunner builds and executes the fixtures command tree.
type AppRunner struct {
	out    io.Writer
	errOut io.Writer
}

// NewAppRunner creates a runner writing to stdout and stderr.
func NewAppRunner() *AppRunner {
	return &AppRunner{out: os.Stdout, errOut: os.Stderr}
}

// NewAppRunnerWithOutput creates a runner writing to the given writers.
func NewAppRunnerWithOutput(out, errOut io.Writer) *AppRunner {
	return &AppRunner{out: out, errOut: errOut}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	envFile  string
	logLevel string
	noColor  bool
}

// readOptions are the decoding flags of read, cases and ls.
type readOptions struct {
	format    string
	encoding  string
	delimiter string
	sheet     string
}

// Usage prints the command-line help information to the specified writer.
func (a *AppRunner) Usage(writer io.Writer) {
	root := a.rootCommand()
	root.SetOut(writer)
	_ = root.Usage()
}

// Run parses args and executes the selected subcommand.
func (a *AppRunner) Run(args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func (a *AppRunner) rootCommand() *cobra.Command {
	var global globalOptions

	root := &cobra.Command{
		Use:   "fixtures",
		Short: "Inspect fixture files and the test cases they expand to",
		Long: `Inspect fixture files and the test cases they expand to.

Environment Variables:
  FIXTURES_FIXTURES_PATH   Fixtures directory used when loading cases (cases, dir --collection)
  FIXTURES_LOG_LEVEL       Initial log level (none, error, warn, info, debug)
  Any VAR                  Can be used in directory flags via $VAR/${VAR} or %VAR%`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(global)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	pf := root.PersistentFlags()
	// The runtime directory flag is the same flag go test parses, so the CLI
	// resolves exactly as a test would. Each run starts from an unset value.
	if goFlag := flag.Lookup(fixtures.FlagFixturesPath); goFlag != nil {
		_ = goFlag.Value.Set("")
		pf.AddFlag(pflag.PFlagFromGoFlag(goFlag))
	}
	pf.StringVar(&global.envFile, "env-file", "", "load environment variables from this file (default: .env when present)")
	pf.StringVar(&global.logLevel, "log-level", "", "logging level (none, error, warn, info, debug)")
	pf.BoolVar(&global.noColor, "no-color", false, "disable colored output")

	root.AddCommand(a.dirCommand(), a.readCommand(), a.casesCommand(), a.lsCommand())
	return root
}

func (a *AppRunner) setup(global globalOptions) error {
	if global.noColor {
		color.NoColor = true
	}
	if global.logLevel != "" {
		if _, err := logging.ParseLevel(global.logLevel); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		logging.SetupLogging(global.logLevel)
	}
	if global.envFile != "" {
		if err := godotenv.Load(global.envFile); err != nil {
			return fmt.Errorf("failed to load env file '%s': %w", global.envFile, err)
		}
		logging.Logf(logging.Debug, "Loaded environment from %s", global.envFile)
	} else if err := godotenv.Load(); err == nil {
		logging.Logf(logging.Debug, "Loaded environment from .env")
	}
	return nil
}

func addReadFlags(fs *pflag.FlagSet, opts *readOptions) {
	fs.StringVar(&opts.format, "format", "", "file format (text, json, jsonl, csv, csv_dict, yaml, xlsx); detected from the extension when empty")
	fs.StringVar(&opts.encoding, "encoding", "", "text encoding (default utf-8)")
	fs.StringVar(&opts.delimiter, "delimiter", "", "CSV field delimiter (default ',')")
	fs.StringVar(&opts.sheet, "sheet", "", "XLSX sheet (default: active sheet)")
}

// delimiterRune converts a one-character flag value. Empty means the default.
func delimiterRune(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: invalid delimiter '%s': must be a single character", ErrUsage, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func (o readOptions) fixtureOptions() ([]fixtures.Option, error) {
	delim, err := delimiterRune(o.delimiter)
	if err != nil {
		return nil, err
	}
	var opts []fixtures.Option
	if o.encoding != "" {
		opts = append(opts, fixtures.WithEncoding(o.encoding))
	}
	if delim != 0 {
		opts = append(opts, fixtures.WithCSVDelimiter(delim))
	}
	if o.sheet != "" {
		opts = append(opts, fixtures.WithSheet(o.sheet))
	}
	return opts, nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrMissingArgs, cmd.Name(), n, len(args))
		}
		return nil
	}
}

func (a *AppRunner) dirCommand() *cobra.Command {
	var collection bool
	var fixturesDir string
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Print the resolved fixtures directory",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			var err error
			if collection {
				dir, err = fixtures.ResolveCollectionDir(fixturesDir)
			} else {
				dir, err = fixtures.ResolveRuntimeDir(fixturesDir)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&collection, "collection", false, "resolve as LoadCases does (environment variable instead of flag)")
	cmd.Flags().StringVar(&fixturesDir, "fixtures-dir", "", "explicit directory, highest precedence")
	return cmd
}

func (a *AppRunner) readCommand() *cobra.Command {
	var opts readOptions
	var output string
	cmd := &cobra.Command{
		Use:   "read <path segments...>",
		Short: "Parse a fixture file and print its content",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: read expects at least one path segment", ErrMissingArgs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("%w: unknown output '%s', must be json or yaml", ErrUsage, output)
			}
			fxOpts, err := opts.fixtureOptions()
			if err != nil {
				return err
			}
			fx, err := newFixturesFunc(fxOpts...)
			if err != nil {
				return err
			}
			value, err := fx.LoadFormat(fixtures.Format(opts.format), args...)
			if err != nil {
				return err
			}
			if text, ok := value.(string); ok {
				_, err := io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			return writeValue(cmd.OutOrStdout(), value, output)
		},
	}
	addReadFlags(cmd.Flags(), &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output encoding for structured data (json, yaml)")
	return cmd
}

func writeValue(w io.Writer, value interface{}, output string) error {
	var data []byte
	var err error
	if output == "yaml" {
		data, err = yaml.Marshal(value)
	} else {
		data, err = json.MarshalIndent(value, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode output as %s: %w", output, err)
	}
	_, err = w.Write(data)
	return err
}

func (a *AppRunner) casesCommand() *cobra.Command {
	var opts readOptions
	var idField, fixturesDir, filterExpr string
	var noIDField bool
	cmd := &cobra.Command{
		Use:   "cases <file>",
		Short: "Print the test cases a data file expands to",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delim, err := delimiterRune(opts.delimiter)
			if err != nil {
				return err
			}
			paramOpts := []fixtures.ParamOption{
				fixtures.FileFormat(fixtures.Format(opts.format)),
				fixtures.FixturesDir(fixturesDir),
				fixtures.Encoding(opts.encoding),
				fixtures.CSVDelimiter(delim),
				fixtures.Sheet(opts.sheet),
				fixtures.Filter(filterExpr),
			}
			switch {
			case noIDField:
				paramOpts = append(paramOpts, fixtures.NoIDField())
			case cmd.Flags().Changed("id-field"):
				paramOpts = append(paramOpts, fixtures.IDField(idField))
			}

			cs, err := loadCasesFunc(args[0], paramOpts...)
			if err != nil {
				return err
			}
			printCases(cmd.OutOrStdout(), cs)
			return nil
		},
	}
	addReadFlags(cmd.Flags(), &opts)
	cmd.Flags().StringVar(&idField, "id-field", "id", "field holding case ids")
	cmd.Flags().BoolVar(&noIDField, "no-id-field", false, "do not extract ids; every field is a parameter")
	cmd.Flags().StringVar(&fixturesDir, "fixtures-dir", "", "fixtures directory (overrides FIXTURES_FIXTURES_PATH)")
	cmd.Flags().StringVar(&filterExpr, "filter", "", "keep only records matching this expression")
	return cmd
}

var (
	headingColor = color.New(color.Bold)
	idColor      = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

func printCases(w io.Writer, cs *fixtures.CaseSet) {
	headingColor.Fprintf(w, "%s", cs.File)
	fmt.Fprintf(w, " (%s)\n", cs.Format)
	dimColor.Fprintf(w, "argnames: ")
	fmt.Fprintln(w, cs.ArgNames())
	for _, c := range cs.Cases() {
		idColor.Fprintf(w, "  %s", c.ID)
		for i, name := range c.Names {
			fmt.Fprintf(w, " %s=%s", name, formatValue(c.Values[i]))
		}
		fmt.Fprintln(w)
	}
	dimColor.Fprintf(w, "%d cases\n", cs.Len())
}

// formatValue prints scalars as-is and anything else as compact JSON.
func formatValue(v interface{}) string {
	if convert.IsScalar(v) {
		if s, ok := v.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		if v == nil {
			return "null"
		}
		return convert.ToString(v)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func (a *AppRunner) lsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [pattern]",
		Short: "List fixture files matching a glob (default **/*)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: ls accepts at most one pattern, got %d", ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "**/*"
			if len(args) == 1 {
				pattern = args[0]
			}
			fx, err := newFixturesFunc()
			if err != nil {
				return err
			}
			matches, err := fx.Glob(pattern)
			if err != nil {
				return err
			}
			for _, m := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			logging.Logf(logging.Info, "%d files match %s in %s", len(matches), pattern, fx.Dir())
			return nil
		},
	}
}
