package bargraph

import (
	"github.com/HaPhanBaoMinh/segbar/internal/domain"
	"github.com/HaPhanBaoMinh/segbar/internal/mathx"
)

// Clamp limits v to the range. This is also the value a level widget echoes.
func Clamp(v float64, rng domain.Range) float64 {
	return mathx.Clamp(v, rng.Min, rng.Max)
}

// ComputeFill returns how many of segments are lit for value. A degenerate
// range (Max <= Min) lights nothing.
func ComputeFill(value float64, rng domain.Range, segments int) int {
	span := rng.Max - rng.Min
	if span <= 0 || segments <= 0 {
		return 0
	}
	frac := (Clamp(value, rng) - rng.Min) / span
	return mathx.RoundHalfUp(frac * float64(segments))
}

// ClampSegments applies the configuration floor of one segment.
func ClampSegments(n int) int { return mathx.AtLeast(n, 1) }

// ClampCells applies the configuration floor of one cell.
func ClampCells(n int) int { return mathx.AtLeast(n, 1) }
