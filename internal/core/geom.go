// Package core provides fundamental types and utilities for the replay viewer.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// animation logic pure and testable.
package core

import "math"

// Point is a discrete board cell. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Vec3 is a continuous scene position.
// X maps to the board column, Z to the board row and Y to height above the board.
type Vec3 struct {
	X, Y, Z float64
}

// CellPosition returns the scene position of a board cell at the given height.
func CellPosition(p Point, height float64) Vec3 {
	return Vec3{X: float64(p.X), Y: height, Z: float64(p.Y)}
}

// DistanceTo returns the euclidean distance between two positions.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
