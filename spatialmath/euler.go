package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/xformop/utils"
)

// RotationOrder names the order in which the three per-axis rotations of an Euler triple are applied.
type RotationOrder int

// The six Tait-Bryan rotation orders. RotationOrderXZY applies X, then Z, then Y.
const (
	RotationOrderXYZ RotationOrder = iota
	RotationOrderXZY
	RotationOrderYXZ
	RotationOrderYZX
	RotationOrderZXY
	RotationOrderZYX
)

var rotationOrderAxes = [...][3]int{
	RotationOrderXYZ: {0, 1, 2},
	RotationOrderXZY: {0, 2, 1},
	RotationOrderYXZ: {1, 0, 2},
	RotationOrderYZX: {1, 2, 0},
	RotationOrderZXY: {2, 0, 1},
	RotationOrderZYX: {2, 1, 0},
}

// AllRotationOrders lists every RotationOrder.
var AllRotationOrders = []RotationOrder{
	RotationOrderXYZ, RotationOrderXZY, RotationOrderYXZ, RotationOrderYZX, RotationOrderZXY, RotationOrderZYX,
}

// Axes returns the axis indices in application order.
func (o RotationOrder) Axes() [3]int {
	return rotationOrderAxes[o]
}

// FirstAxis returns the axis that is applied first.
func (o RotationOrder) FirstAxis() int {
	return rotationOrderAxes[o][0]
}

func (o RotationOrder) String() string {
	names := [3]byte{'X', 'Y', 'Z'}
	axes := o.Axes()
	return string([]byte{names[axes[0]], names[axes[1]], names[axes[2]]})
}

// odd reports whether the axes are an odd permutation of XYZ.
func (o RotationOrder) odd() bool {
	axes := o.Axes()
	return axes[1] != (axes[0]+1)%3
}

// EulerToMatrix returns the rotation applying the per-axis angles of degrees (indexed by axis, not
// by order) in the given order.
func EulerToMatrix(order RotationOrder, degrees r3.Vector) mgl64.Mat4 {
	m := mgl64.Ident4()
	for _, axis := range order.Axes() {
		m = m.Mul4(NewRotationMatrixAxis(axis, utils.DegToRad(VectorComponent(degrees, axis))))
	}
	return m
}

// MatrixToEuler decomposes the orthonormal linear part of m into per-axis angles in degrees
// (indexed by axis) for the given order. Results lie in (-180, 180], with the middle angle in
// [-90, 90]. At gimbal lock the last axis absorbs no rotation.
// See Shoemake, "Euler Angle Conversion", Graphics Gems IV.
func MatrixToEuler(order RotationOrder, m mgl64.Mat4) r3.Vector {
	// work on the column-vector form so the classic formulas apply directly
	c := m.Mat3().Transpose()
	axes := order.Axes()
	i, j, k := axes[0], axes[1], axes[2]

	var a, b, g float64
	cy := math.Hypot(c.At(i, i), c.At(j, i))
	if cy > 1e-12 {
		a = math.Atan2(c.At(k, j), c.At(k, k))
		b = math.Atan2(-c.At(k, i), cy)
		g = math.Atan2(c.At(j, i), c.At(i, i))
	} else {
		a = math.Atan2(-c.At(j, k), c.At(j, j))
		b = math.Atan2(-c.At(k, i), cy)
		g = 0
	}
	if order.odd() {
		a, b, g = -a, -b, -g
	}

	var out r3.Vector
	out = SetVectorComponent(out, i, utils.RadToDeg(a))
	out = SetVectorComponent(out, j, utils.RadToDeg(b))
	out = SetVectorComponent(out, k, utils.RadToDeg(g))
	return out
}

// MatrixToEulerNear is MatrixToEuler with each angle shifted by a multiple of 360 degrees to lie as
// close as possible to the matching angle in near.
func MatrixToEulerNear(order RotationOrder, m mgl64.Mat4, near r3.Vector) r3.Vector {
	e := MatrixToEuler(order, m)
	return r3.Vector{
		X: utils.NearestEquivalentDeg(e.X, near.X),
		Y: utils.NearestEquivalentDeg(e.Y, near.Y),
		Z: utils.NearestEquivalentDeg(e.Z, near.Z),
	}
}

// AxisAngleDeg returns the rotation, in degrees, about the given axis held by the orthonormal
// linear part of m. Rotation about the other axes is ignored.
func AxisAngleDeg(axis int, m mgl64.Mat4) float64 {
	// rotation about axis a maps basis b = a+1 to cos*b + sin*(a+2)
	b, c := (axis+1)%3, (axis+2)%3
	return utils.RadToDeg(math.Atan2(m.At(b, c), m.At(b, b)))
}
