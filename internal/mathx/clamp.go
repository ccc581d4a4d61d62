package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. Unlike a plain min/max pair it keeps lo when
// the bounds are inverted, so callers get a deterministic answer.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// AtLeast returns v, or lo when v is smaller.
func AtLeast[T constraints.Ordered](v, lo T) T {
	if v < lo {
		return lo
	}
	return v
}

// RoundHalfUp rounds to the nearest integer, ties towards +Inf.
func RoundHalfUp[T constraints.Float](v T) int {
	f := float64(v) + 0.5
	i := int(f)
	if float64(i) > f {
		i--
	}
	return i
}
