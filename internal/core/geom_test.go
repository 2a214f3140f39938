package core

import (
	"math"
	"testing"
)

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{-0.55, -0.55, 0.55, -0.55},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMoveToward(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		expected                 float64
	}{
		{"step up capped", 0, 1, 0.25, 0.25},
		{"step down capped", 0, -1, 0.25, -0.25},
		{"no overshoot", 0, 0.1, 0.25, 0.1},
		{"already aligned", 0.3, 0.3, 0.25, 0.3},
		{"zero step", 0.3, 1, 0, 0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := MoveToward(tc.current, tc.target, tc.maxStep)
			if math.Abs(result-tc.expected) > 1e-12 {
				t.Errorf("MoveToward(%v, %v, %v) = %v, expected %v",
					tc.current, tc.target, tc.maxStep, result, tc.expected)
			}
		})
	}
}

func TestSignAndFinite(t *testing.T) {
	if Sign(3) != 1 || Sign(-2) != -1 || Sign(0) != 0 {
		t.Error("Sign returned unexpected values")
	}
	if !Finite(1, 2, -3) {
		t.Error("Finite(1, 2, -3) should be true")
	}
	if Finite(1, math.NaN()) {
		t.Error("Finite should reject NaN")
	}
	if Finite(math.Inf(1)) {
		t.Error("Finite should reject Inf")
	}
}
