// Package fixtures locates and reads test fixture files and turns tabular
// data files into parametrized subtests.
//
// Fixture files live under a base directory, tests/fixtures by default.
// Inside a running test the directory comes from WithDir, then the
// -fixtures-fixtures-path flag, then the default:
//
//	fx, err := fixtures.New()
//	cfg, err := fx.ReadJSON("configs", "basic.json")
//
// Data-driven tests expand a CSV, JSON, JSONL, YAML or XLSX file into one
// subtest per record. Cases are loaded before any subtest runs, and the
// directory comes from FixturesDir, then FIXTURES_FIXTURES_PATH, then the
// default:
//
//	func TestAdd(t *testing.T) {
//		fixtures.ParametrizeFromFixture(t, "add.csv", func(t *testing.T, c fixtures.Case) {
//			a, _ := c.Int("a")
//			...
//		})
//	}
//
// CSV and XLSX values are always strings. Case offers explicit conversions.
package fixtures
