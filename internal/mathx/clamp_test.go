package mathx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, 1.0, Clamp(2.0, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
	assert.Equal(t, 5, Clamp(5, 1, 10))

	// inverted bounds settle on lo
	assert.Equal(t, 3.0, Clamp(2.0, 3, 1))
}

func TestAtLeast(t *testing.T) {
	assert.Equal(t, 1, AtLeast(0, 1))
	assert.Equal(t, 1, AtLeast(-7, 1))
	assert.Equal(t, 12, AtLeast(12, 1))
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{9.999, 10},
		{-0.5, 0},
		{-1.5, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}
