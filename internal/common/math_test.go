package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive number", 5, 5},
		{"negative number", -5, 5},
		{"zero", 0, 0},
		{"large positive", 1000000, 1000000},
		{"large negative", -1000000, 1000000},
		{"min int special case", math.MinInt32 + 1, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Abs(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi int
		expected  int
	}{
		{"inside range", 5, 0, 10, 5},
		{"below range", -3, 0, 10, 0},
		{"above range", 15, 0, 10, 10},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
		{"negative range", -7, -10, -5, -7},
		{"degenerate range", 42, 3, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clamp(tt.x, tt.lo, tt.hi)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAbsProperties(t *testing.T) {
	values := []int{-10, -1, 0, 1, 10, 100}

	for _, v := range values {
		absV := Abs(v)
		// Abs value is always non-negative
		assert.GreaterOrEqual(t, absV, 0)

		// Abs(v) == Abs(-v)
		assert.Equal(t, Abs(v), Abs(-v))

		// If v >= 0, Abs(v) == v
		if v >= 0 {
			assert.Equal(t, v, absV)
		}
	}
}

// Benchmarks
func BenchmarkAbs(b *testing.B) {
	values := []int{-5, 5, -100, 100, 0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Abs(values[i%len(values)])
	}
}
