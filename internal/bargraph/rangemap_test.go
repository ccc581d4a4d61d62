package bargraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HaPhanBaoMinh/segbar/internal/domain"
)

func TestComputeFill(t *testing.T) {
	unit := domain.Range{Min: 0, Max: 1}
	volts := domain.Range{Min: 3.4, Max: 4.2}

	tests := []struct {
		name     string
		value    float64
		rng      domain.Range
		segments int
		want     int
	}{
		{"empty", 0, unit, 10, 0},
		{"full", 1, unit, 10, 10},
		{"half", 0.5, unit, 10, 5},
		{"rounds half up", 0.25, unit, 10, 3},
		{"rounds down", 0.24, unit, 10, 2},
		{"below range", -3, unit, 10, 0},
		{"above range", 7, unit, 10, 10},
		{"offset range", 3.8, volts, 8, 4},
		{"single segment low", 0.49, unit, 1, 0},
		{"single segment high", 0.5, unit, 1, 1},
		{"degenerate range", 0.5, domain.Range{Min: 1, Max: 1}, 10, 0},
		{"inverted range", 0.5, domain.Range{Min: 1, Max: 0}, 10, 0},
		{"no segments", 0.5, unit, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeFill(tt.value, tt.rng, tt.segments))
		})
	}
}

func TestComputeFillClampsToBoundary(t *testing.T) {
	rng := domain.Range{Min: -2, Max: 6}
	lo := ComputeFill(rng.Min, rng, 12)
	hi := ComputeFill(rng.Max, rng, 12)
	for _, v := range []float64{-100, -2.0001, -50.5} {
		assert.Equal(t, lo, ComputeFill(v, rng, 12), "value %v", v)
	}
	for _, v := range []float64{100, 6.0001, 1e9} {
		assert.Equal(t, hi, ComputeFill(v, rng, 12), "value %v", v)
	}
}

func TestComputeFillMonotonic(t *testing.T) {
	rng := domain.Range{Min: 0, Max: 1}
	for _, segments := range []int{1, 3, 7, 10, 64} {
		prev := ComputeFill(-0.5, rng, segments)
		for v := -0.5; v <= 1.5; v += 0.001 {
			got := ComputeFill(v, rng, segments)
			assert.GreaterOrEqual(t, got, prev, "segments=%d value=%v", segments, v)
			prev = got
		}
	}
}

func TestClampSegmentsAndCells(t *testing.T) {
	assert.Equal(t, 1, ClampSegments(0))
	assert.Equal(t, 1, ClampSegments(-4))
	assert.Equal(t, 16, ClampSegments(16))
	assert.Equal(t, 1, ClampCells(0))
	assert.Equal(t, 4, ClampCells(4))
}
