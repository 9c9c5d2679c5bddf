package io

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Record is one row, object or line of a data file. Keys keeps the order in
// which fields appeared in the file.
type Record struct {
	Keys   []string
	Values map[string]interface{}
}

func newRecord(capacity int) Record {
	return Record{Keys: make([]string, 0, capacity), Values: make(map[string]interface{}, capacity)}
}

// set adds or replaces a field, keeping the position of the first occurrence.
func (r *Record) set(key string, value interface{}) {
	if _, exists := r.Values[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Values[key] = value
}

// Has reports whether the record carries key.
func (r Record) Has(key string) bool {
	_, ok := r.Values[key]
	return ok
}

// KeyDiff returns the keys of want missing from r and the keys of r absent
// from want, both sorted. Two empty slices mean the key sets are equal.
func (r Record) KeyDiff(want []string) (missing, extra []string) {
	missing, extra = lo.Difference(want, r.Keys)
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

// DescribeKeyDiff renders a KeyDiff result for error messages.
func DescribeKeyDiff(missing, extra []string) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing keys ["+strings.Join(missing, ", ")+"]")
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected keys ["+strings.Join(extra, ", ")+"]")
	}
	return strings.Join(parts, ", ")
}
