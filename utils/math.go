// Package utils contains small helpers shared by the transform packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// NearestEquivalentDeg returns the angle equal to ang modulo 360 that lies closest to ref.
func NearestEquivalentDeg(ang, ref float64) float64 {
	return ang + 360*math.Round((ref-ang)/360)
}
