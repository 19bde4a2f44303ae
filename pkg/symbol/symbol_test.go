package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   Symbol
	}{
		{name: "used", result: "used", want: Used},
		{name: "historical", result: "historical", want: Historical},
		{name: "cloned", result: "cloned", want: Cloned},
		{name: "verify", result: "verify", want: Verify},
		{name: "empty", result: "", want: None},
		{name: "mixed case", result: "USED", want: Used},
		{name: "surrounding whitespace", result: "  historical ", want: Historical},
		{name: "unknown value degrades to blank", result: "confirmed", want: None},
		{name: "garbage degrades to blank", result: "##??", want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.result))
		})
	}
}

func TestPriorityOrderIsTotal(t *testing.T) {
	ordered := []Symbol{None, Verify, Cloned, Historical, Used}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, Priority(ordered[i]), Priority(ordered[i-1]),
			"%q must outrank %q", ordered[i], ordered[i-1])
	}
	// Symbols outside the set rank with None.
	assert.Equal(t, 0, Priority(Symbol("?")))
}

func TestMax(t *testing.T) {
	assert.Equal(t, Used, Max(Used, Historical))
	assert.Equal(t, Used, Max(Historical, Used))
	assert.Equal(t, Historical, Max(None, Historical))
	assert.Equal(t, Verify, Max(Verify, None))
	assert.Equal(t, None, Max(None, None))
}

// Merging any set of symbols never yields a lower priority than any input.
func TestMaxMonotonic(t *testing.T) {
	all := []Symbol{Used, Historical, Cloned, Verify, None}
	for _, a := range all {
		for _, b := range all {
			m := Max(a, b)
			assert.GreaterOrEqual(t, Priority(m), Priority(a))
			assert.GreaterOrEqual(t, Priority(m), Priority(b))
		}
	}
}
