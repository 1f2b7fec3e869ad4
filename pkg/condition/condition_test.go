package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse covers the accepted grammar and common rejections.
func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Condition
		wantErr bool
	}{
		{"greater than", "score > 0.8", Condition{"score", OpGT, 0.8}, false},
		{"less than", "cost < 10", Condition{"cost", OpLT, 10}, false},
		{"gte", "confidence >= 0.5", Condition{"confidence", OpGTE, 0.5}, false},
		{"lte", "retries <= 3", Condition{"retries", OpLTE, 3}, false},
		{"equality", "attempts == 1", Condition{"attempts", OpEQ, 1}, false},
		{"no spaces", "score>0.8", Condition{"score", OpGT, 0.8}, false},
		{"negative threshold", "delta > -1.5", Condition{"delta", OpGT, -1.5}, false},
		{"empty", "", Condition{}, true},
		{"no operator", "score 0.8", Condition{}, true},
		{"missing field", "> 0.8", Condition{}, true},
		{"non-numeric rhs", "score > high", Condition{}, true},
		{"single equals", "score = 1", Condition{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestParse_TwoCharOperatorsFirst guards against ">=" parsing as ">".
func TestParse_TwoCharOperatorsFirst(t *testing.T) {
	got, err := Parse("score >= 2")
	require.NoError(t, err)
	assert.Equal(t, OpGTE, got.Op)
	assert.Equal(t, 2.0, got.Threshold)
}

// TestEvaluate checks comparisons against a variable map.
func TestEvaluate(t *testing.T) {
	vars := map[string]any{
		"score":   0.9,
		"count":   3,
		"textual": "not a number",
	}

	testCases := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{"true comparison", "score > 0.8", true, false},
		{"false comparison", "score < 0.5", false, false},
		{"int field", "count == 3", true, false},
		{"missing field", "absent > 1", false, true},
		{"non-numeric field", "textual > 1", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cond, err := Parse(tc.expr)
			require.NoError(t, err)
			got, err := cond.Evaluate(vars)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestString_RoundTrip verifies Parse(c.String()) is stable.
func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{"score > 0.8", "cost <= 10", "attempts == 1"} {
		cond, err := Parse(s)
		require.NoError(t, err)
		again, err := Parse(cond.String())
		require.NoError(t, err)
		assert.Equal(t, cond, again)
	}
}
