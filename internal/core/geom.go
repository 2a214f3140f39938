// Package core provides fundamental types and utilities shared by the simulation,
// the anchor locator and the host adapters. It has no UI dependencies so game
// logic stays pure and testable.
package core

import "math"

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts an int value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// MoveToward returns current moved toward target by at most maxStep.
// It never overshoots: if the target is closer than maxStep, target is returned.
func MoveToward(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return current
	}
	diff := target - current
	return current + Sign(diff)*math.Min(math.Abs(diff), maxStep)
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
