package math

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign[T constraints.Signed | constraints.Float](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// RoundHalfUp rounds to the nearest integer with ties going toward +inf,
// so -2.5 rounds to -2 and 2.5 to 3.
func RoundHalfUp[T constraints.Float](v T) T {
	return T(math.Floor(float64(v) + 0.5))
}

// SnapTo rounds v to the nearest multiple of step. A non-positive step
// returns v unchanged.
func SnapTo[T constraints.Float](v, step T) T {
	if step <= 0 {
		return v
	}
	return RoundHalfUp(v/step) * step
}

func NearlyZero[T constraints.Float](v, eps T) bool {
	return Abs(v) < eps
}

func Sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
