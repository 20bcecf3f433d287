// Package spatialmath defines the matrix, quaternion and Euler angle math used to evaluate and edit
// transform op stacks.
//
// Matrices follow the row-vector convention: a point p is transformed as p * M, translation lives
// in the last row, and composing a child transform with its parent is child * parent.
// mgl64 is only used as 4x4/3x3 storage and arithmetic; its At(row, col) indexing is the
// mathematical one, so the convention above holds regardless of mgl64's column-major storage.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// NewMatrixFromRows builds a matrix from 16 values listed row by row.
func NewMatrixFromRows(v [16]float64) mgl64.Mat4 {
	var m mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m.Set(r, c, v[r*4+c])
		}
	}
	return m
}

// MatrixRows returns the 16 entries of m row by row.
func MatrixRows(m mgl64.Mat4) [16]float64 {
	var v [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			v[r*4+c] = m.At(r, c)
		}
	}
	return v
}

// NewTranslationMatrix returns a matrix translating by t.
func NewTranslationMatrix(t r3.Vector) mgl64.Mat4 {
	return mgl64.Translate3D(t.X, t.Y, t.Z).Transpose()
}

// NewScaleMatrix returns a matrix scaling by s along each axis.
func NewScaleMatrix(s r3.Vector) mgl64.Mat4 {
	return mgl64.Scale3D(s.X, s.Y, s.Z)
}

// NewRotationMatrixX returns a right handed rotation about the X axis.
func NewRotationMatrixX(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(radians).Transpose()
}

// NewRotationMatrixY returns a right handed rotation about the Y axis.
func NewRotationMatrixY(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(radians).Transpose()
}

// NewRotationMatrixZ returns a right handed rotation about the Z axis.
func NewRotationMatrixZ(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(radians).Transpose()
}

// NewRotationMatrixAxis returns a rotation about the given axis index (0 = X, 1 = Y, 2 = Z).
func NewRotationMatrixAxis(axis int, radians float64) mgl64.Mat4 {
	switch axis {
	case 0:
		return NewRotationMatrixX(radians)
	case 1:
		return NewRotationMatrixY(radians)
	default:
		return NewRotationMatrixZ(radians)
	}
}

// Translation returns the translation row of m.
func Translation(m mgl64.Mat4) r3.Vector {
	return r3.Vector{X: m.At(3, 0), Y: m.At(3, 1), Z: m.At(3, 2)}
}

// SetTranslation returns m with its translation row replaced by t.
func SetTranslation(m mgl64.Mat4, t r3.Vector) mgl64.Mat4 {
	m.Set(3, 0, t.X)
	m.Set(3, 1, t.Y)
	m.Set(3, 2, t.Z)
	return m
}

// LinearPart returns m with its translation removed.
func LinearPart(m mgl64.Mat4) mgl64.Mat4 {
	return m.Mat3().Mat4()
}

// WithLinearPart returns m with its upper 3x3 block replaced by l, keeping the translation row.
func WithLinearPart(m mgl64.Mat4, l mgl64.Mat3) mgl64.Mat4 {
	return SetTranslation(l.Mat4(), Translation(m))
}

// TransformPoint returns p * m.
func TransformPoint(p r3.Vector, m mgl64.Mat4) r3.Vector {
	return TransformDirection(p, m).Add(Translation(m))
}

// TransformDirection returns p * m ignoring the translation of m.
func TransformDirection(p r3.Vector, m mgl64.Mat4) r3.Vector {
	return r3.Vector{
		X: p.X*m.At(0, 0) + p.Y*m.At(1, 0) + p.Z*m.At(2, 0),
		Y: p.X*m.At(0, 1) + p.Y*m.At(1, 1) + p.Z*m.At(2, 1),
		Z: p.X*m.At(0, 2) + p.Y*m.At(1, 2) + p.Z*m.At(2, 2),
	}
}

// MatrixAlmostEqual reports whether every entry of a and b is within epsilon.
func MatrixAlmostEqual(a, b mgl64.Mat4, epsilon float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

// IsDiagonal reports whether all off diagonal entries of m are within epsilon of zero.
func IsDiagonal(m mgl64.Mat3, epsilon float64) bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r != c && math.Abs(m.At(r, c)) > epsilon {
				return false
			}
		}
	}
	return true
}

// Diagonal returns the diagonal of m.
func Diagonal(m mgl64.Mat3) r3.Vector {
	return r3.Vector{X: m.At(0, 0), Y: m.At(1, 1), Z: m.At(2, 2)}
}

// VectorComponent returns the axis'th component of v.
func VectorComponent(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetVectorComponent returns v with its axis'th component set to value.
func SetVectorComponent(v r3.Vector, axis int, value float64) r3.Vector {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
