package fixtures

import (
	"encoding/json"
	"fmt"

	"github.com/brian-c-moore/fixtures-fixtures/internal/convert"
)

// Case is one generated test case.
type Case struct {
	ID     string
	Names  []string
	Values []interface{}
}

// Get returns the raw value of parameter name.
func (c Case) Get(name string) (interface{}, bool) {
	for i, n := range c.Names {
		if n == name {
			return c.Values[i], true
		}
	}
	return nil, false
}

func (c Case) lookup(name string) (interface{}, error) {
	v, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("case %s has no parameter '%s'", c.ID, name)
	}
	return v, nil
}

// String returns parameter name printed with %v, or "" when it is absent or nil.
func (c Case) String(name string) string {
	v, _ := c.Get(name)
	return convert.ToString(v)
}

// Int converts parameter name to an integer.
func (c Case) Int(name string) (int64, error) {
	v, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	n, err := convert.ToInt64(v)
	if err != nil {
		return 0, fmt.Errorf("case %s: parameter '%s': %w", c.ID, name, err)
	}
	return n, nil
}

// Float converts parameter name to a float.
func (c Case) Float(name string) (float64, error) {
	v, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	f, err := convert.ToFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("case %s: parameter '%s': %w", c.ID, name, err)
	}
	return f, nil
}

// Bool converts parameter name to a boolean.
func (c Case) Bool(name string) (bool, error) {
	v, err := c.lookup(name)
	if err != nil {
		return false, err
	}
	b, err := convert.ToBool(v)
	if err != nil {
		return false, fmt.Errorf("case %s: parameter '%s': %w", c.ID, name, err)
	}
	return b, nil
}

// Map returns the parameters keyed by name.
func (c Case) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(c.Names))
	for i, n := range c.Names {
		m[n] = c.Values[i]
	}
	return m
}

// Bind copies the parameters into v, a pointer to a struct or map, through
// JSON. CSV values stay strings, so numeric fields need the ",string" tag option.
func (c Case) Bind(v interface{}) error {
	data, err := json.Marshal(c.Map())
	if err != nil {
		return fmt.Errorf("case %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("case %s: %w", c.ID, err)
	}
	return nil
}
