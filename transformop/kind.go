// Package transformop models ordered stacks of transform operations (translate, scale, rotate,
// orient and generic matrix ops) and evaluates the coordinate frames they produce.
package transformop

import (
	"github.com/pkg/errors"

	"go.viam.com/xformop/spatialmath"
)

// Kind is the type of operation a transform op performs.
type Kind int

// The supported op kinds. KindTransform holds a generic 4x4 matrix.
const (
	KindTranslate Kind = iota
	KindScale
	KindRotateX
	KindRotateY
	KindRotateZ
	KindRotateXYZ
	KindRotateXZY
	KindRotateYXZ
	KindRotateYZX
	KindRotateZXY
	KindRotateZYX
	KindOrient
	KindTransform
)

var kindNames = [...]string{
	KindTranslate: "translate",
	KindScale:     "scale",
	KindRotateX:   "rotateX",
	KindRotateY:   "rotateY",
	KindRotateZ:   "rotateZ",
	KindRotateXYZ: "rotateXYZ",
	KindRotateXZY: "rotateXZY",
	KindRotateYXZ: "rotateYXZ",
	KindRotateYZX: "rotateYZX",
	KindRotateZXY: "rotateZXY",
	KindRotateZYX: "rotateZYX",
	KindOrient:    "orient",
	KindTransform: "transform",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind returns the Kind named by s, as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown transform op kind %q", s)
}

// IsSingleAxisRotation reports whether k rotates about a single axis.
func (k Kind) IsSingleAxisRotation() bool {
	return k == KindRotateX || k == KindRotateY || k == KindRotateZ
}

// IsThreeAxisRotation reports whether k holds an Euler triple.
func (k Kind) IsThreeAxisRotation() bool {
	return k >= KindRotateXYZ && k <= KindRotateZYX
}

// IsRotation reports whether k is any rotation kind, including orient.
func (k Kind) IsRotation() bool {
	return k.IsSingleAxisRotation() || k.IsThreeAxisRotation() || k == KindOrient
}

// Axis returns the rotation axis of a single axis rotation kind (0 = X, 1 = Y, 2 = Z).
func (k Kind) Axis() int {
	return int(k - KindRotateX)
}

// RotationOrder returns the rotation order of a three axis rotation kind.
func (k Kind) RotationOrder() spatialmath.RotationOrder {
	return spatialmath.RotationOrder(k - KindRotateXYZ)
}

// ValueType returns the type of value stored by ops of this kind.
func (k Kind) ValueType() ValueType {
	switch {
	case k.IsSingleAxisRotation():
		return ValueTypeScalar
	case k == KindOrient:
		return ValueTypeQuat
	case k == KindTransform:
		return ValueTypeMatrix
	default:
		return ValueTypeVec3
	}
}
