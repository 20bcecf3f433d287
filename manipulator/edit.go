package manipulator

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/transformop"
	"go.viam.com/xformop/utils"
)

// Translate moves the op by delta expressed in space. Translate ops accumulate the delta; transform
// ops add it to their translation row.
func (p *Processor) Translate(delta r3.Vector, space Space) error {
	if err := p.checkMode(ModeTranslate); err != nil {
		return err
	}
	_, inv, err := p.spaceFrameInverse(space)
	if err != nil {
		return err
	}
	local := spatialmath.TransformDirection(delta, inv)

	switch p.op.Kind() {
	case transformop.KindTranslate:
		if p.op.IsInverse() {
			local = local.Mul(-1)
		}
		return p.set(transformop.Vec3Value(p.value().Vec3().Add(local)))
	case transformop.KindTransform:
		m := p.effectiveMatrix()
		return p.setEffectiveMatrix(spatialmath.SetTranslation(m, spatialmath.Translation(m).Add(local)))
	default:
		return errors.Errorf("cannot translate op %q of kind %s", p.op.Name(), p.op.Kind())
	}
}

// Rotate rotates the op by q expressed in space.
func (p *Processor) Rotate(q quat.Number, space Space) error {
	if err := p.checkMode(ModeRotate); err != nil {
		return err
	}
	if p.op.Kind() == transformop.KindOrient && space == SpaceTransform && !p.op.IsInverse() {
		prev := p.value().Quat()
		rotated := spatialmath.NormalizeQuat(spatialmath.ComposeQuat(q, prev))
		if spatialmath.QuatDot(rotated, prev) < 0 {
			rotated = spatialmath.Flip(rotated)
		}
		return p.set(transformop.QuatValue(rotated))
	}
	return p.rotate(spatialmath.QuatToMatrix(q), space)
}

// RotateX rotates the op about the X axis of space.
func (p *Processor) RotateX(radians float64, space Space) error {
	return p.rotateAxis(0, radians, space)
}

// RotateY rotates the op about the Y axis of space.
func (p *Processor) RotateY(radians float64, space Space) error {
	return p.rotateAxis(1, radians, space)
}

// RotateZ rotates the op about the Z axis of space.
func (p *Processor) RotateZ(radians float64, space Space) error {
	return p.rotateAxis(2, radians, space)
}

func (p *Processor) rotateAxis(axis int, radians float64, space Space) error {
	if err := p.checkMode(ModeRotate); err != nil {
		return err
	}
	if space == SpaceTransform && !p.op.IsInverse() {
		if v, ok := p.addFirstAxisAngle(axis, utils.RadToDeg(radians)); ok {
			return p.set(v)
		}
	}
	return p.rotate(spatialmath.NewRotationMatrixAxis(axis, radians), space)
}

// addFirstAxisAngle adds degrees to the op value when axis is the first axis the op rotates about,
// where a delta composes with the stored angle as a plain sum.
func (p *Processor) addFirstAxisAngle(axis int, degrees float64) (transformop.Value, bool) {
	k := p.op.Kind()
	v := p.value()
	switch {
	case k.IsSingleAxisRotation() && k.Axis() == axis:
		return transformop.ScalarValue(v.Scalar() + degrees), true
	case k.IsThreeAxisRotation() && k.RotationOrder().FirstAxis() == axis:
		angles := v.Vec3()
		return transformop.Vec3Value(
			spatialmath.SetVectorComponent(angles, axis, spatialmath.VectorComponent(angles, axis)+degrees),
		), true
	default:
		return transformop.Value{}, false
	}
}

// rotate applies delta, a rotation in space, to the op: R' = F D F^-1 * R.
func (p *Processor) rotate(delta mgl64.Mat4, space Space) error {
	frame, inv, err := p.spaceFrameInverse(space)
	if err != nil {
		return err
	}
	local := frame.Mul4(delta).Mul4(inv)

	if p.op.Kind() == transformop.KindTransform {
		m := p.effectiveMatrix()
		stretch, rotation := spatialmath.PolarDecompose(m.Mat3())
		rotated := spatialmath.Orthonormalize(local.Mul4(rotation.Mat4()))
		return p.setEffectiveMatrix(spatialmath.WithLinearPart(m, stretch.Mul3(rotated.Mat3())))
	}
	if !p.op.Kind().IsRotation() {
		return errors.Errorf("cannot rotate op %q of kind %s", p.op.Name(), p.op.Kind())
	}

	rotated := spatialmath.Orthonormalize(local.Mul4(p.effectiveMatrix()))
	if p.op.IsInverse() {
		rotated = rotated.Transpose()
	}
	return p.set(p.rotationValue(rotated))
}

// rotationValue expresses the rotation m in the op's representation, staying close to the current value.
func (p *Processor) rotationValue(m mgl64.Mat4) transformop.Value {
	k := p.op.Kind()
	prev := p.value()
	switch {
	case k.IsSingleAxisRotation():
		angle := spatialmath.AxisAngleDeg(k.Axis(), m)
		return transformop.ScalarValue(utils.NearestEquivalentDeg(angle, prev.Scalar()))
	case k.IsThreeAxisRotation():
		return transformop.Vec3Value(spatialmath.MatrixToEulerNear(k.RotationOrder(), m, prev.Vec3()))
	default:
		q := spatialmath.MatrixToQuat(m)
		if spatialmath.QuatDot(q, prev.Quat()) < 0 {
			q = spatialmath.Flip(q)
		}
		return transformop.QuatValue(q)
	}
}

// Scale scales the op by delta expressed in space. It returns false, leaving the op unchanged, when
// delta cannot be expressed as a per-axis scale of the op: non-uniform deltas in world space, and
// parent space deltas that a rotation before the op would turn into shear.
func (p *Processor) Scale(delta r3.Vector, space Space) (bool, error) {
	if err := p.checkMode(ModeScale); err != nil {
		return false, err
	}
	local, ok, err := p.localScale(delta, space)
	if err != nil {
		return false, err
	}
	if !ok {
		p.logger.Debugw("rejected scale edit", "op", p.op.Name(), "delta", delta, "space", space.String())
		return false, nil
	}

	switch p.op.Kind() {
	case transformop.KindScale:
		s := p.value().Vec3()
		if p.op.IsInverse() {
			if local.X == 0 || local.Y == 0 || local.Z == 0 {
				return false, errors.Errorf("cannot apply zero scale %v to inverse op %q", local, p.op.Name())
			}
			s = r3.Vector{X: s.X / local.X, Y: s.Y / local.Y, Z: s.Z / local.Z}
		} else {
			s = r3.Vector{X: s.X * local.X, Y: s.Y * local.Y, Z: s.Z * local.Z}
		}
		return true, p.set(transformop.Vec3Value(s))
	case transformop.KindTransform:
		m := p.effectiveMatrix()
		linear := spatialmath.NewScaleMatrix(local).Mat3().Mul3(m.Mat3())
		if err := p.setEffectiveMatrix(spatialmath.WithLinearPart(m, linear)); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, errors.Errorf("cannot scale op %q of kind %s", p.op.Name(), p.op.Kind())
	}
}

// ScaleUniform scales the op by s along every axis of space.
func (p *Processor) ScaleUniform(s float64, space Space) (bool, error) {
	return p.Scale(r3.Vector{X: s, Y: s, Z: s}, space)
}

// localScale returns the per-axis scale in the op's space equivalent to delta in space.
func (p *Processor) localScale(delta r3.Vector, space Space) (r3.Vector, bool, error) {
	switch space {
	case SpaceTransform:
		return delta, true, nil
	case SpaceWorld:
		uniform := utils.Float64AlmostEqual(delta.X, delta.Y, p.scaleTolerance) &&
			utils.Float64AlmostEqual(delta.X, delta.Z, p.scaleTolerance)
		return delta, uniform, nil
	default:
		frame, inv, err := p.spaceFrameInverse(space)
		if err != nil {
			return r3.Vector{}, false, err
		}
		g := frame.Mul4(spatialmath.NewScaleMatrix(delta)).Mul4(inv).Mat3()
		if !spatialmath.IsDiagonal(g, p.scaleTolerance) {
			return r3.Vector{}, false, nil
		}
		return spatialmath.Diagonal(g), true, nil
	}
}

// setEffectiveMatrix stores m as the matrix the op contributes, inverting it for inverse ops.
func (p *Processor) setEffectiveMatrix(m mgl64.Mat4) error {
	if p.op.IsInverse() {
		if det := m.Det(); det > -singularEpsilon && det < singularEpsilon {
			return errors.Errorf("cannot invert singular matrix for inverse op %q", p.op.Name())
		}
		m = m.Inv()
	}
	return p.set(transformop.MatrixValue(m))
}
