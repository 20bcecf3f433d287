package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// QuatToMatrix returns the rotation matrix of q. q does not need to be normalized.
func QuatToMatrix(q quat.Number) mgl64.Mat4 {
	return toMglQuat(NormalizeQuat(q)).Mat4().Transpose()
}

// MatrixToQuat returns the unit quaternion of the rotation held in the linear part of m.
// The linear part must be orthonormal.
func MatrixToQuat(m mgl64.Mat4) quat.Number {
	return NormalizeQuat(fromMglQuat(mgl64.Mat4ToQuat(LinearPart(m).Transpose())))
}

// ComposeQuat returns the quaternion applying first, then second, matching
// QuatToMatrix(first) * QuatToMatrix(second).
func ComposeQuat(first, second quat.Number) quat.Number {
	return quat.Mul(second, first)
}

// NormalizeQuat scales q to unit length. The zero quaternion becomes the identity.
func NormalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuatDot returns the four dimensional dot product of two quaternions.
func QuatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage, q == -q, and
// this function will *not* account for this. Use OrientationAlmostEqual unless you're certain this is what you want.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// OrientationAlmostEqual reports whether a and b describe the same rotation, accounting for q == -q.
func OrientationAlmostEqual(a, b quat.Number, tol float64) bool {
	return QuaternionAlmostEqual(a, b, tol) || QuaternionAlmostEqual(a, Flip(b), tol)
}

func toMglQuat(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

func fromMglQuat(q mgl64.Quat) quat.Number {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}
