// Package filter selects fixture records with a govaluate boolean expression,
// e.g. `enabled == 'true' && region != 'eu'`.
package filter

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// evaluator is the part of *govaluate.EvaluableExpression the filter needs.
type evaluator interface {
	Evaluate(map[string]interface{}) (interface{}, error)
}

var newEvaluator = func(expr string) (evaluator, error) {
	return govaluate.NewEvaluableExpression(expr)
}

// Filter is a compiled row filter.
type Filter struct {
	expr string
	eval evaluator
}

// Compile parses expr. An empty expression yields a nil filter that keeps
// every record.
func Compile(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}
	eval, err := newEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression '%s': %w", expr, err)
	}
	return &Filter{expr: expr, eval: eval}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Keep evaluates the filter against values. A nil filter keeps everything.
// Results that are not booleans are errors.
func (f *Filter) Keep(values map[string]interface{}) (bool, error) {
	if f == nil {
		return true, nil
	}
	result, err := f.eval.Evaluate(values)
	if err != nil {
		return false, fmt.Errorf("filter '%s' failed: %w", f.expr, err)
	}
	keep, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter '%s' returned %T (%v), want a boolean", f.expr, result, result)
	}
	return keep, nil
}
