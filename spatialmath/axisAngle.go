package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// R4AA is a rotation of Theta radians about the axis (RX, RY, RZ).
// See https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
type R4AA struct {
	Theta float64
	RX    float64
	RY    float64
	RZ    float64
}

// NewAxisRotation returns the axis angle rotating by theta radians about the axis'th basis vector.
func NewAxisRotation(axis int, theta float64) *R4AA {
	v := SetVectorComponent(r3.Vector{}, axis, 1)
	return &R4AA{Theta: theta, RX: v.X, RY: v.Y, RZ: v.Z}
}

// Axis returns the rotation axis.
func (r4 *R4AA) Axis() r3.Vector {
	return r3.Vector{X: r4.RX, Y: r4.RY, Z: r4.RZ}
}

// ToQuat converts an R4 axis angle to a unit quaternion. A zero axis gives the identity.
func (r4 *R4AA) ToQuat() quat.Number {
	axis := r4.Axis()
	norm := axis.Norm()
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	axis = axis.Mul(math.Sin(r4.Theta/2) / norm)
	return quat.Number{Real: math.Cos(r4.Theta / 2), Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
}

// QuatToR4AA converts a quat to an R4 axis angle with Theta in [-pi, pi]. The identity is
// reported as a zero rotation about X.
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 1, 0, 0}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}
