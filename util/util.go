package util

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]
func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round converts a parameter value to the nearest integer
func Round[A constraints.Float](v A) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// Bool interprets a parameter value as a toggle
func Bool[A constraints.Float](v A) bool {
	return v >= 0.5
}

// Float converts a toggle back to a parameter value
func Float(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
