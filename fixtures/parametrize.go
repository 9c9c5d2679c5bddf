package fixtures

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/samber/lo"

	"github.com/brian-c-moore/fixtures-fixtures/internal/config"
	"github.com/brian-c-moore/fixtures-fixtures/internal/convert"
	"github.com/brian-c-moore/fixtures-fixtures/internal/filter"
	fxio "github.com/brian-c-moore/fixtures-fixtures/internal/io"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// ParamOption configures LoadCases and ParametrizeFromFixture.
type ParamOption func(*config.ParamConfig)

// IDField names the field holding case ids. Default "id".
func IDField(name string) ParamOption {
	return func(c *config.ParamConfig) { c.IDField = &name }
}

// NoIDField disables id extraction; every field becomes a parameter.
func NoIDField() ParamOption {
	return IDField("")
}

// IDs sets case ids explicitly, overriding anything in the file. There must
// be one per record. Repeated ids are kept as given; t.Run suffixes repeated
// subtest names itself.
func IDs(ids ...string) ParamOption {
	return func(c *config.ParamConfig) { c.IDs = append(make([]string, 0, len(ids)), ids...) }
}

// FileFormat overrides extension detection.
func FileFormat(f Format) ParamOption {
	return func(c *config.ParamConfig) { c.Format = f }
}

// FixturesDir overrides $FIXTURES_FIXTURES_PATH and the default directory.
// $VAR and %VAR% references in dir are expanded, as for every source.
func FixturesDir(dir string) ParamOption {
	return func(c *config.ParamConfig) { c.FixturesDir = dir }
}

// Encoding sets the data file encoding.
func Encoding(name string) ParamOption {
	return func(c *config.ParamConfig) { c.Encoding = name }
}

// CSVDelimiter sets the delimiter of CSV data files.
func CSVDelimiter(r rune) ParamOption {
	return func(c *config.ParamConfig) { c.CSVDelimiter = r }
}

// Sheet selects the sheet of XLSX data files.
func Sheet(name string) ParamOption {
	return func(c *config.ParamConfig) { c.Sheet = name }
}

// Filter keeps only records for which expr, a govaluate expression over the
// record's fields, is true. The id field is visible to the expression.
func Filter(expr string) ParamOption {
	return func(c *config.ParamConfig) { c.Filter = expr }
}

// Parallel marks every generated subtest with t.Parallel.
func Parallel() ParamOption {
	return func(c *config.ParamConfig) { c.Parallel = true }
}

// CaseSet is the expansion of one data file. Values[i] holds the values of
// Names for the case identified by IDs[i].
type CaseSet struct {
	File   string
	Format Format
	Names  []string
	Values [][]interface{}
	IDs    []string

	parallel bool
}

// ArgNames returns the parameter names joined with ",".
func (cs *CaseSet) ArgNames() string {
	return strings.Join(cs.Names, ",")
}

// Len returns the number of cases.
func (cs *CaseSet) Len() int {
	return len(cs.IDs)
}

// Case returns case i.
func (cs *CaseSet) Case(i int) Case {
	return Case{ID: cs.IDs[i], Names: cs.Names, Values: cs.Values[i]}
}

// Cases returns every case in file order.
func (cs *CaseSet) Cases() []Case {
	return lo.Times(cs.Len(), cs.Case)
}

// Run runs fn as one subtest per case, named by the case id.
func (cs *CaseSet) Run(t *testing.T, fn func(t *testing.T, c Case)) {
	t.Helper()
	for _, c := range cs.Cases() {
		t.Run(c.ID, func(t *testing.T) {
			if cs.parallel {
				t.Parallel()
			}
			fn(t, c)
		})
	}
}

// ParametrizeFromFixture loads the cases of file and runs fn once per case.
// A file that cannot be loaded fails t before any case runs.
func ParametrizeFromFixture(t *testing.T, file string, fn func(t *testing.T, c Case), opts ...ParamOption) {
	t.Helper()
	cs, err := LoadCases(file, opts...)
	if err != nil {
		t.Fatalf("parametrize from fixture %s: %v", file, err)
	}
	cs.Run(t, fn)
}

// LoadCases resolves, parses and validates a data file and expands it into
// cases. Every record must have the same fields. The id field, when present,
// supplies case ids and is not a parameter.
func LoadCases(file string, opts ...ParamOption) (*CaseSet, error) {
	cfg := config.ParamConfig{File: file}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := fxio.ValidateEncoding(cfg.Encoding); err != nil {
		return nil, fmt.Errorf("invalid parametrization settings:\n- Param.Encoding: %v", err)
	}
	rowFilter, err := filter.Compile(cfg.Filter)
	if err != nil {
		return nil, err
	}

	dir, err := ResolveCollectionDir(cfg.FixturesDir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, filepath.FromSlash(file))
	if err := fxio.CheckExists(path, file); err != nil {
		return nil, err
	}

	format := cfg.Format
	if format == FormatAuto {
		detected, ok := config.DetectFormat(file)
		if !ok {
			return nil, &FormatError{Name: file}
		}
		format = detected
	}

	reader, err := fxio.NewRecordReader(format, cfg.ReadSettings())
	if err != nil {
		return nil, err
	}
	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	if err := checkRecords(file, records); err != nil {
		return nil, err
	}

	idField := cfg.IDFieldName()
	useIDField := idField != "" && records[0].Has(idField)
	names := append([]string(nil), records[0].Keys...)
	if useIDField {
		names = lo.Without(names, idField)
	}
	values := lo.Map(records, func(rec fxio.Record, _ int) []interface{} {
		return lo.Map(names, func(name string, _ int) interface{} { return rec.Values[name] })
	})

	var ids []string
	switch {
	case cfg.IDs != nil:
		if len(cfg.IDs) != len(records) {
			return nil, &DataError{Path: file, Index: -1, Msg: fmt.Sprintf("got %d ids for %d records", len(cfg.IDs), len(records))}
		}
		ids = cfg.IDs
	case useIDField:
		ids = lo.Map(records, func(rec fxio.Record, _ int) string { return convert.ToString(rec.Values[idField]) })
	default:
		ids = synthesizeIDs(names, values)
	}

	cs := &CaseSet{File: file, Format: format, Names: names, parallel: cfg.Parallel}
	for i, rec := range records {
		keep, err := rowFilter.Keep(rec.Values)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", file, i, err)
		}
		if keep {
			cs.Values = append(cs.Values, values[i])
			cs.IDs = append(cs.IDs, ids[i])
		}
	}
	if len(cs.IDs) == 0 {
		return nil, &DataError{Path: file, Index: -1, Msg: fmt.Sprintf("filter '%s' matched no records", rowFilter)}
	}

	logging.Logf(logging.Debug, "Loaded %d cases (%s) from %s as %s", cs.Len(), cs.ArgNames(), path, format)
	return cs, nil
}

// checkRecords enforces a non-empty file with a uniform key set.
func checkRecords(file string, records []fxio.Record) error {
	if len(records) == 0 {
		return &DataError{Path: file, Index: -1, Msg: "file has no data rows/items"}
	}
	keys := records[0].Keys
	for i := 1; i < len(records); i++ {
		missing, extra := records[i].KeyDiff(keys)
		if len(missing) > 0 || len(extra) > 0 {
			return &DataError{Path: file, Index: i, Msg: "all records must have the same keys as record 0: " + fxio.DescribeKeyDiff(missing, extra)}
		}
	}
	return nil
}

// synthesizeIDs builds ids from parameter values: scalars are printed,
// anything else becomes the parameter name plus the case index. Parts are
// joined with "-" and duplicates get a numeric suffix.
func synthesizeIDs(names []string, values [][]interface{}) []string {
	ids := make([]string, len(values))
	for i, row := range values {
		parts := make([]string, len(row))
		for j, v := range row {
			switch {
			case v == nil:
				parts[j] = "nil"
			case convert.IsScalar(v):
				parts[j] = convert.ToString(v)
			default:
				parts[j] = fmt.Sprintf("%s%d", names[j], i)
			}
		}
		ids[i] = strings.Join(parts, "-")
	}
	return uniqueIDs(ids)
}

func uniqueIDs(ids []string) []string {
	counts := lo.CountValues(ids)
	next := make(map[string]int)
	out := make([]string, len(ids))
	for i, id := range ids {
		if counts[id] == 1 {
			out[i] = id
			continue
		}
		sep := ""
		if r := []rune(id); len(r) > 0 && unicode.IsDigit(r[len(r)-1]) {
			sep = "_"
		}
		out[i] = fmt.Sprintf("%s%s%d", id, sep, next[id])
		next[id]++
	}
	return out
}
