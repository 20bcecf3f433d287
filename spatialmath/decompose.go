package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// PolarDecompose splits m into stretch * rotation, where rotation is a proper rotation
// (determinant +1) and stretch is symmetric and holds all scale and shear. A reflection in m is
// carried by stretch.
func PolarDecompose(m mgl64.Mat3) (stretch, rotation mgl64.Mat3) {
	a := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			a.Set(r, c, m.At(r, c))
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return m, mgl64.Ident3()
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	// m = U S V^T, rotation = U V^T, stretch = U S U^T
	var uvt mat.Dense
	uvt.Mul(&u, v.T())
	if mat.Det(&uvt) < 0 {
		for r := 0; r < 3; r++ {
			u.Set(r, 2, -u.At(r, 2))
		}
		sigma[2] = -sigma[2]
		uvt.Mul(&u, v.T())
	}

	var us, usut mat.Dense
	us.Mul(&u, mat.NewDiagDense(3, sigma))
	usut.Mul(&us, u.T())

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rotation.Set(r, c, uvt.At(r, c))
			stretch.Set(r, c, usut.At(r, c))
		}
	}
	return stretch, rotation
}

// Orthonormalize returns m with scale and shear removed from its linear part. The translation row is kept.
func Orthonormalize(m mgl64.Mat4) mgl64.Mat4 {
	_, rotation := PolarDecompose(m.Mat3())
	return WithLinearPart(m, rotation)
}
