package transformop

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xformop/spatialmath"
)

// ValueType tags which field of a Value is meaningful.
type ValueType int

// The value types held by ops.
const (
	ValueTypeScalar ValueType = iota
	ValueTypeVec3
	ValueTypeQuat
	ValueTypeMatrix
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeScalar:
		return "scalar"
	case ValueTypeVec3:
		return "vec3"
	case ValueTypeQuat:
		return "quat"
	case ValueTypeMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Value is an op value widened to double precision. Storage precision is applied by the op on Set.
type Value struct {
	typ    ValueType
	scalar float64
	vec    r3.Vector
	quat   quat.Number
	matrix mgl64.Mat4
}

// ScalarValue returns a single angle value.
func ScalarValue(f float64) Value {
	return Value{typ: ValueTypeScalar, scalar: f}
}

// Vec3Value returns a three component value.
func Vec3Value(v r3.Vector) Value {
	return Value{typ: ValueTypeVec3, vec: v}
}

// QuatValue returns a quaternion value.
func QuatValue(q quat.Number) Value {
	return Value{typ: ValueTypeQuat, quat: q}
}

// MatrixValue returns a 4x4 matrix value.
func MatrixValue(m mgl64.Mat4) Value {
	return Value{typ: ValueTypeMatrix, matrix: m}
}

// IdentityValue returns the value for which an op of the given kind contributes no transformation.
func IdentityValue(k Kind) Value {
	switch k.ValueType() {
	case ValueTypeScalar:
		return ScalarValue(0)
	case ValueTypeQuat:
		return QuatValue(quat.Number{Real: 1})
	case ValueTypeMatrix:
		return MatrixValue(mgl64.Ident4())
	default:
		if k == KindScale {
			return Vec3Value(r3.Vector{X: 1, Y: 1, Z: 1})
		}
		return Vec3Value(r3.Vector{})
	}
}

// Type returns the value type.
func (v Value) Type() ValueType {
	return v.typ
}

// Scalar returns the scalar held by a ValueTypeScalar value.
func (v Value) Scalar() float64 {
	return v.scalar
}

// Vec3 returns the vector held by a ValueTypeVec3 value.
func (v Value) Vec3() r3.Vector {
	return v.vec
}

// Quat returns the quaternion held by a ValueTypeQuat value.
func (v Value) Quat() quat.Number {
	return v.quat
}

// Matrix returns the matrix held by a ValueTypeMatrix value.
func (v Value) Matrix() mgl64.Mat4 {
	return v.matrix
}

// Quantize returns v with every component rounded to precision p.
func (v Value) Quantize(p Precision) Value {
	switch v.typ {
	case ValueTypeScalar:
		v.scalar = p.Quantize(v.scalar)
	case ValueTypeVec3:
		v.vec = r3.Vector{X: p.Quantize(v.vec.X), Y: p.Quantize(v.vec.Y), Z: p.Quantize(v.vec.Z)}
	case ValueTypeQuat:
		v.quat = quat.Number{
			Real: p.Quantize(v.quat.Real),
			Imag: p.Quantize(v.quat.Imag),
			Jmag: p.Quantize(v.quat.Jmag),
			Kmag: p.Quantize(v.quat.Kmag),
		}
	case ValueTypeMatrix:
		for i := range v.matrix {
			v.matrix[i] = p.Quantize(v.matrix[i])
		}
	}
	return v
}

func (v Value) String() string {
	switch v.typ {
	case ValueTypeScalar:
		return fmt.Sprintf("%g", v.scalar)
	case ValueTypeVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.vec.X, v.vec.Y, v.vec.Z)
	case ValueTypeQuat:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.quat.Real, v.quat.Imag, v.quat.Jmag, v.quat.Kmag)
	case ValueTypeMatrix:
		return fmt.Sprintf("%v", spatialmath.MatrixRows(v.matrix))
	default:
		return "<invalid>"
	}
}
