package transformop

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/utils"
)

// OpMatrix returns the matrix contributed by op at tc. Unauthored values contribute identity.
func OpMatrix(op Op, tc TimeCode) mgl64.Mat4 {
	return ValueMatrix(op.Kind(), ValueOrIdentity(op, tc), op.IsInverse())
}

// ValueMatrix returns the matrix an op of kind k contributes when holding v. When inverse is set
// the exact inverse is returned: negated translation, reciprocal scale, transposed rotation.
func ValueMatrix(k Kind, v Value, inverse bool) mgl64.Mat4 {
	switch {
	case k == KindTranslate:
		t := v.Vec3()
		if inverse {
			t = t.Mul(-1)
		}
		return spatialmath.NewTranslationMatrix(t)
	case k == KindScale:
		s := v.Vec3()
		if inverse {
			s = r3.Vector{X: 1 / s.X, Y: 1 / s.Y, Z: 1 / s.Z}
		}
		return spatialmath.NewScaleMatrix(s)
	case k.IsSingleAxisRotation():
		angle := v.Scalar()
		if inverse {
			angle = -angle
		}
		return spatialmath.NewRotationMatrixAxis(k.Axis(), utils.DegToRad(angle))
	case k.IsThreeAxisRotation():
		m := spatialmath.EulerToMatrix(k.RotationOrder(), v.Vec3())
		if inverse {
			m = m.Transpose()
		}
		return m
	case k == KindOrient:
		m := spatialmath.QuatToMatrix(v.Quat())
		if inverse {
			m = m.Transpose()
		}
		return m
	case k == KindTransform:
		if inverse {
			return v.Matrix().Inv()
		}
		return v.Matrix()
	default:
		return mgl64.Ident4()
	}
}

// EvaluateCoordinateFrameForIndex returns the frame the op at index is expressed in: the
// composition M(ops[index-1]) * ... * M(ops[0]) of every op before it. index may equal len(ops),
// which yields the full local transformation.
func EvaluateCoordinateFrameForIndex(ops []Op, index int, tc TimeCode) (mgl64.Mat4, error) {
	if index < 0 || index > len(ops) {
		return mgl64.Ident4(), utils.NewIndexOutOfRangeError("coordinate frame", index, len(ops)+1)
	}
	frame := mgl64.Ident4()
	for _, op := range ops[:index] {
		frame = OpMatrix(op, tc).Mul4(frame)
	}
	return frame, nil
}

// LocalTransformation returns the matrix composed from every op.
func LocalTransformation(ops []Op, tc TimeCode) mgl64.Mat4 {
	m, _ := EvaluateCoordinateFrameForIndex(ops, len(ops), tc)
	return m
}
