// Package condition parses and evaluates the restricted branch-condition
// grammar carried on pipeline edges:
//
//	<field> <op> <numeric-literal>
//
// with op one of >, <, >=, <=, ==. The execution engine evaluates
// conditions server-side; this package exists so the editor can validate
// them before submission and preview branch-taking locally.
package condition

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a comparison operator.
type Op string

// Supported operators. Two-character operators are listed first so
// parsing never splits ">=" into ">" + "=".
const (
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpEQ  Op = "=="
	OpGT  Op = ">"
	OpLT  Op = "<"
)

var ops = []Op{OpGTE, OpLTE, OpEQ, OpGT, OpLT}

// Condition is a parsed branch condition.
type Condition struct {
	// Field is the output field the comparison reads.
	Field string

	// Op is the comparison operator.
	Op Op

	// Threshold is the numeric literal on the right-hand side.
	Threshold float64
}

// Parse parses a condition string.
// Returns an error when the string doesn't match the grammar.
func Parse(s string) (Condition, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Condition{}, fmt.Errorf("condition is empty")
	}

	for _, op := range ops {
		idx := strings.Index(trimmed, string(op))
		if idx < 0 {
			continue
		}
		field := strings.TrimSpace(trimmed[:idx])
		rhs := strings.TrimSpace(trimmed[idx+len(op):])
		if field == "" {
			return Condition{}, fmt.Errorf("condition %q has no field before %s", s, op)
		}
		threshold, err := strconv.ParseFloat(rhs, 64)
		if err != nil {
			return Condition{}, fmt.Errorf("condition %q: right-hand side %q is not numeric", s, rhs)
		}
		return Condition{Field: field, Op: op, Threshold: threshold}, nil
	}
	return Condition{}, fmt.Errorf("condition %q has no comparison operator", s)
}

// Evaluate resolves the field in vars and applies the comparison.
// Missing fields and non-numeric values return an error rather than a
// silent false, since a preview that lies is worse than none.
func (c Condition) Evaluate(vars map[string]any) (bool, error) {
	raw, ok := vars[c.Field]
	if !ok {
		return false, fmt.Errorf("field %q not present", c.Field)
	}
	val, err := toFloat64(raw)
	if err != nil {
		return false, fmt.Errorf("field %q: %w", c.Field, err)
	}

	switch c.Op {
	case OpGT:
		return val > c.Threshold, nil
	case OpLT:
		return val < c.Threshold, nil
	case OpGTE:
		return val >= c.Threshold, nil
	case OpLTE:
		return val <= c.Threshold, nil
	case OpEQ:
		return val == c.Threshold, nil
	default:
		return false, fmt.Errorf("unknown operator %q", c.Op)
	}
}

// String renders the condition back into grammar form.
// Parse(c.String()) round-trips.
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Op, strconv.FormatFloat(c.Threshold, 'f', -1, 64))
}

// toFloat64 converts numeric JSON-ish values to float64.
func toFloat64(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", val)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
