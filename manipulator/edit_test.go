package manipulator

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xformop/logging"
	"go.viam.com/xformop/referenceframe"
	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/transformop"
	"go.viam.com/xformop/utils"
)

// a transform op value holding diag(4, 5, 6) followed by a 45 degree rotation about X, at (1, 2, 3)
var scaledRotatedMatrix = spatialmath.NewMatrixFromRows([16]float64{
	4, 0, 0, 0,
	0, 3.535534, 3.535534, 0,
	0, -4.242641, 4.242641, 0,
	1, 2, 3, 1,
})

func TestTranslate(t *testing.T) {
	for _, tc := range precisions {
		t.Run(tc.name, func(t *testing.T) {
			s := transformop.NewStack()
			op := addOp(t, s, transformop.KindTranslate, tc.precision, "")
			p := newTestProcessor(t, s, 0)

			delta := r3.Vector{X: 1.11, Y: 2.22, Z: 3.33}
			test.That(t, p.Translate(delta, SpaceTransform), test.ShouldBeNil)
			vecShouldAlmostEqual(t, getOp(t, op).Vec3(), delta, tc.tolerance)
			test.That(t, p.Translate(delta, SpaceTransform), test.ShouldBeNil)
			vecShouldAlmostEqual(t, getOp(t, op).Vec3(), delta.Mul(2), tc.tolerance)
		})
	}
}

func TestTranslateSpaces(t *testing.T) {
	newStack := func(t *testing.T) (*transformop.Stack, transformop.Op) {
		s := transformop.NewStack()
		setOp(t, addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, ""), transformop.ScalarValue(90))
		return s, addOp(t, s, transformop.KindTranslate, transformop.PrecisionDouble, "")
	}

	t.Run("transform", func(t *testing.T) {
		s, op := newStack(t)
		test.That(t, newTestProcessor(t, s, 1).Translate(r3.Vector{X: 1}, SpaceTransform), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 1}, 1e-9)
	})

	t.Run("parent", func(t *testing.T) {
		s, op := newStack(t)
		p := newTestProcessor(t, s, 1)
		test.That(t, p.Translate(r3.Vector{X: 1}, SpaceParent), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{Y: -1}, 1e-9)

		// the delta lands where it was asked for in parent space
		local := transformop.LocalTransformation(s.Ops(), transformop.DefaultTime())
		vecShouldAlmostEqual(t, spatialmath.Translation(local), r3.Vector{X: 1}, 1e-9)
	})

	t.Run("world", func(t *testing.T) {
		s, op := newStack(t)
		fs := referenceframe.NewEmptyFrameSystem("test")
		scaled := referenceframe.NewStaticFrame("scaled", spatialmath.NewScaleMatrix(r3.Vector{X: 2, Y: 2, Z: 2}))
		test.That(t, fs.AddFrame(scaled, fs.World()), test.ShouldBeNil)
		prim, err := fs.AddPrim("prim", s, "scaled")
		test.That(t, err, test.ShouldBeNil)

		p, err := NewProcessor(prim, 1, WithLogger(logging.NewTestLogger(t)))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, p.Translate(r3.Vector{X: 2}, SpaceWorld), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{Y: -1}, 1e-9)

		world, err := fs.WorldTransform("prim", transformop.DefaultTime())
		test.That(t, err, test.ShouldBeNil)
		vecShouldAlmostEqual(t, spatialmath.Translation(world), r3.Vector{X: 2}, 1e-9)
	})
}

func TestTranslateInverseOp(t *testing.T) {
	s := transformop.NewStack()
	pivot := addOp(t, s, transformop.KindTranslate, transformop.PrecisionFloat, "pivot")
	setOp(t, pivot, transformop.Vec3Value(r3.Vector{X: 1, Y: 1, Z: 1}))
	setOp(t, addOp(t, s, transformop.KindRotateX, transformop.PrecisionFloat, ""), transformop.ScalarValue(90))
	_, err := s.AddInverseOp("xformOp:translate:pivot")
	test.That(t, err, test.ShouldBeNil)

	p, err := NewProcessorForOp(NewStandalonePrim("prim", s), "!invert!xformOp:translate:pivot",
		WithLogger(logging.NewTestLogger(t)))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.OpIndex(), test.ShouldEqual, 2)

	test.That(t, p.Translate(r3.Vector{X: 1}, SpaceTransform), test.ShouldBeNil)
	vecShouldAlmostEqual(t, getOp(t, pivot).Vec3(), r3.Vector{Y: 1, Z: 1}, 1e-6)

	test.That(t, p.Translate(r3.Vector{Y: 1}, SpaceParent), test.ShouldBeNil)
	vecShouldAlmostEqual(t, getOp(t, pivot).Vec3(), r3.Vector{Y: 1, Z: 2}, 1e-6)
}

func TestTranslateUnauthored(t *testing.T) {
	s := transformop.NewStack()
	op := addOp(t, s, transformop.KindTranslate, transformop.PrecisionDouble, "")
	test.That(t, newTestProcessor(t, s, 0).Translate(r3.Vector{X: 1, Y: 2, Z: 3}, SpaceWorld), test.ShouldBeNil)
	test.That(t, getOp(t, op).Vec3(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestScale(t *testing.T) {
	for _, tc := range precisions {
		t.Run(tc.name, func(t *testing.T) {
			s := transformop.NewStack()
			op := addOp(t, s, transformop.KindScale, tc.precision, "")
			p := newTestProcessor(t, s, 0)

			delta := r3.Vector{X: 2, Y: 3, Z: 4}
			ok, err := p.Scale(delta, SpaceTransform)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldBeTrue)
			ok, err = p.Scale(delta, SpaceTransform)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldBeTrue)
			vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 4, Y: 9, Z: 16}, tc.tolerance)
		})
	}
}

func TestScaleWorldRejectsNonUniform(t *testing.T) {
	for _, tc := range precisions {
		t.Run(tc.name, func(t *testing.T) {
			s := transformop.NewStack()
			setOp(t, addOp(t, s, transformop.KindRotateXYZ, tc.precision, ""), transformop.Vec3Value(r3.Vector{X: 30, Y: 20, Z: 10}))
			op := addOp(t, s, transformop.KindScale, tc.precision, "")
			setOp(t, op, transformop.Vec3Value(r3.Vector{X: 1, Y: 2, Z: 3}))

			logger, logs := logging.NewObservedTestLogger(t)
			p := newTestProcessor(t, s, 1, WithLogger(logger))

			ok, err := p.Scale(r3.Vector{X: 4.3, Y: 4.4, Z: 4.5}, SpaceWorld)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldBeFalse)
			test.That(t, getOp(t, op).Vec3(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
			test.That(t, logs.FilterMessage("rejected scale edit").Len(), test.ShouldEqual, 1)

			ok, err = p.ScaleUniform(4, SpaceWorld)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ok, test.ShouldBeTrue)
			vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 4, Y: 8, Z: 12}, tc.tolerance)
		})
	}
}

func TestScaleParent(t *testing.T) {
	newProcessor := func(t *testing.T, degrees float64) (*Processor, transformop.Op) {
		s := transformop.NewStack()
		setOp(t, addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, ""), transformop.ScalarValue(degrees))
		op := addOp(t, s, transformop.KindScale, transformop.PrecisionDouble, "")
		return newTestProcessor(t, s, 1), op
	}

	t.Run("axis aligned rotation swaps axes", func(t *testing.T) {
		p, op := newProcessor(t, 90)
		ok, err := p.Scale(r3.Vector{X: 2, Y: 3, Z: 1}, SpaceParent)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 3, Y: 2, Z: 1}, 1e-9)
	})

	t.Run("no rotation matches transform space", func(t *testing.T) {
		p, op := newProcessor(t, 0)
		ok, err := p.Scale(r3.Vector{X: 2, Y: 3, Z: 4}, SpaceParent)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 2, Y: 3, Z: 4}, 1e-9)
	})

	t.Run("oblique rotation", func(t *testing.T) {
		p, op := newProcessor(t, 45)
		ok, err := p.Scale(r3.Vector{X: 2, Y: 3, Z: 1}, SpaceParent)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeFalse)
		_, authored := op.Get(transformop.DefaultTime())
		test.That(t, authored, test.ShouldBeFalse)

		ok, err = p.ScaleUniform(2, SpaceParent)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 2, Y: 2, Z: 2}, 1e-9)
	})
}

func TestScaleInverseOp(t *testing.T) {
	s := transformop.NewStack()
	op := addOp(t, s, transformop.KindScale, transformop.PrecisionDouble, "")
	setOp(t, op, transformop.Vec3Value(r3.Vector{X: 2, Y: 4, Z: 8}))
	_, err := s.AddInverseOp(op.Name())
	test.That(t, err, test.ShouldBeNil)

	p := newTestProcessor(t, s, 1)
	ok, err := p.ScaleUniform(2, SpaceTransform)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, getOp(t, op).Vec3(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 4})

	_, err = p.Scale(r3.Vector{X: 0, Y: 1, Z: 1}, SpaceTransform)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, getOp(t, op).Vec3(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 4})
}

func TestRotateFastPath(t *testing.T) {
	for _, tc := range precisions {
		t.Run(tc.name, func(t *testing.T) {
			s := transformop.NewStack()
			op := addOp(t, s, transformop.KindRotateXYZ, tc.precision, "")
			setOp(t, op, transformop.Vec3Value(r3.Vector{X: 10, Y: 18, Z: 42}))

			p := newTestProcessor(t, s, 0)
			test.That(t, p.RotateX(utils.DegToRad(5), SpaceTransform), test.ShouldBeNil)
			vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 15, Y: 18, Z: 42}, tc.tolerance)
		})
	}

	t.Run("general path agrees", func(t *testing.T) {
		s := transformop.NewStack()
		op := addOp(t, s, transformop.KindRotateXYZ, transformop.PrecisionDouble, "")
		setOp(t, op, transformop.Vec3Value(r3.Vector{X: 10, Y: 18, Z: 42}))

		p := newTestProcessor(t, s, 0)
		q := spatialmath.NewAxisRotation(0, utils.DegToRad(5)).ToQuat()
		test.That(t, p.Rotate(q, SpaceTransform), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 15, Y: 18, Z: 42}, 1e-9)
	})

	t.Run("single axis op", func(t *testing.T) {
		s := transformop.NewStack()
		op := addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, "")
		p := newTestProcessor(t, s, 0)
		test.That(t, p.RotateZ(utils.DegToRad(30), SpaceTransform), test.ShouldBeNil)
		test.That(t, getOp(t, op).Scalar(), test.ShouldAlmostEqual, 30, 1e-9)
	})
}

func TestRotateTransformSpaceComposes(t *testing.T) {
	for _, kind := range []transformop.Kind{
		transformop.KindRotateXYZ, transformop.KindRotateXZY, transformop.KindRotateYXZ,
		transformop.KindRotateYZX, transformop.KindRotateZXY, transformop.KindRotateZYX,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			s := transformop.NewStack()
			op := addOp(t, s, kind, transformop.PrecisionDouble, "")
			setOp(t, op, transformop.Vec3Value(r3.Vector{X: 10, Y: 18, Z: 42}))
			before := transformop.OpMatrix(op, transformop.DefaultTime())

			p := newTestProcessor(t, s, 0)
			test.That(t, p.RotateY(utils.DegToRad(7), SpaceTransform), test.ShouldBeNil)

			expected := spatialmath.NewRotationMatrixY(utils.DegToRad(7)).Mul4(before)
			test.That(t, matrixDiff(expected, transformop.OpMatrix(op, transformop.DefaultTime()), 1e-9), test.ShouldBeEmpty)
		})
	}
}

func TestRotateSingleAxisStaysNearPrevious(t *testing.T) {
	s := transformop.NewStack()
	op := addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, "")
	setOp(t, op, transformop.ScalarValue(170))

	p := newTestProcessor(t, s, 0)
	test.That(t, p.RotateZ(utils.DegToRad(20), SpaceWorld), test.ShouldBeNil)
	test.That(t, getOp(t, op).Scalar(), test.ShouldAlmostEqual, 190, 1e-9)
}

func TestRotateOrient(t *testing.T) {
	for _, tc := range precisions {
		t.Run(tc.name, func(t *testing.T) {
			s := transformop.NewStack()
			op := addOp(t, s, transformop.KindOrient, tc.precision, "")
			p := newTestProcessor(t, s, 0)

			quarter := spatialmath.NewAxisRotation(2, math.Pi/2).ToQuat()
			test.That(t, p.Rotate(quarter, SpaceTransform), test.ShouldBeNil)
			test.That(t, spatialmath.QuaternionAlmostEqual(getOp(t, op).Quat(), quarter, tc.tolerance), test.ShouldBeTrue)

			// the result stays in the hemisphere of the previous value
			test.That(t, p.Rotate(quarter, SpaceWorld), test.ShouldBeNil)
			test.That(t, spatialmath.QuaternionAlmostEqual(getOp(t, op).Quat(), quat.Number{Kmag: 1}, tc.tolerance), test.ShouldBeTrue)
		})
	}
}

func TestRotateInverseOp(t *testing.T) {
	s := transformop.NewStack()
	op := addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, "a")
	setOp(t, op, transformop.ScalarValue(30))
	_, err := s.AddInverseOp(op.Name())
	test.That(t, err, test.ShouldBeNil)

	p := newTestProcessor(t, s, 1)
	test.That(t, p.RotateZ(utils.DegToRad(10), SpaceTransform), test.ShouldBeNil)
	test.That(t, getOp(t, op).Scalar(), test.ShouldAlmostEqual, 20, 1e-9)
}

func TestRotateParentAndWorld(t *testing.T) {
	expected := r3.Vector{Y: -30}

	t.Run("parent", func(t *testing.T) {
		s := transformop.NewStack()
		setOp(t, addOp(t, s, transformop.KindRotateZ, transformop.PrecisionDouble, ""), transformop.ScalarValue(90))
		op := addOp(t, s, transformop.KindRotateXYZ, transformop.PrecisionDouble, "")

		test.That(t, newTestProcessor(t, s, 1).RotateX(utils.DegToRad(30), SpaceParent), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), expected, 1e-9)
	})

	t.Run("world", func(t *testing.T) {
		s := transformop.NewStack()
		op := addOp(t, s, transformop.KindRotateXYZ, transformop.PrecisionDouble, "")

		fs := referenceframe.NewEmptyFrameSystem("test")
		parent, err := fs.AddPrim("parent", func() *transformop.Stack {
			ps := transformop.NewStack()
			setOp(t, addOp(t, ps, transformop.KindRotateZ, transformop.PrecisionDouble, ""), transformop.ScalarValue(90))
			return ps
		}(), referenceframe.World)
		test.That(t, err, test.ShouldBeNil)
		prim, err := fs.AddPrim("child", s, parent.Name())
		test.That(t, err, test.ShouldBeNil)

		p, err := NewProcessor(prim, 0, WithLogger(logging.NewTestLogger(t)))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, p.RotateX(utils.DegToRad(30), SpaceWorld), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), expected, 1e-9)

		// transform space ignores the parent
		test.That(t, p.RotateX(utils.DegToRad(30), SpaceTransform), test.ShouldBeNil)
		vecShouldAlmostEqual(t, getOp(t, op).Vec3(), r3.Vector{X: 30, Y: -30}, 1e-9)
	})
}

func TestRotateWorldAllOrders(t *testing.T) {
	// values are stored per axis (X, Y, Z) whatever the rotation order
	expected := map[transformop.Kind]r3.Vector{
		transformop.KindRotateXYZ: {X: 19.390714, Y: -52.266911, Z: 32.255846},
		transformop.KindRotateXZY: {X: 45.915175, Y: -56.799620, Z: 19.063526},
		transformop.KindRotateYXZ: {X: 11.723195, Y: -53.873641, Z: 47.811204},
		transformop.KindRotateYZX: {X: 17.170789, Y: -41.238612, Z: 46.508833},
		transformop.KindRotateZXY: {X: 42.759017, Y: -38.164457, Z: 26.413781},
		transformop.KindRotateZYX: {X: 49.626100, Y: -26.980493, Z: 54.496950},
	}
	for kind, want := range expected {
		for _, tc := range precisions {
			t.Run(kind.String()+"/"+tc.name, func(t *testing.T) {
				s := transformop.NewStack()
				op := addOp(t, s, kind, tc.precision, "")
				setOp(t, op, transformop.Vec3Value(r3.Vector{}))

				p := newTestProcessor(t, s, 0)
				test.That(t, p.RotateY(utils.DegToRad(-38.164457), SpaceWorld), test.ShouldBeNil)
				test.That(t, p.RotateX(utils.DegToRad(42.759017), SpaceWorld), test.ShouldBeNil)
				test.That(t, p.RotateZ(utils.DegToRad(26.413781), SpaceWorld), test.ShouldBeNil)
				vecShouldAlmostEqual(t, getOp(t, op).Vec3(), want, tc.tolerance)
			})
		}
	}
}

func TestTransformOpFrames(t *testing.T) {
	s := transformop.NewStack()
	op := addOp(t, s, transformop.KindTransform, transformop.PrecisionDouble, "")
	setOp(t, op, transformop.MatrixValue(scaledRotatedMatrix))
	origin := spatialmath.NewTranslationMatrix(r3.Vector{X: 1, Y: 2, Z: 3})

	t.Run("rotate", func(t *testing.T) {
		p := newTestProcessor(t, s, 0, WithMode(ModeRotate))
		test.That(t, matrixDiff(origin, mustFrame(t, p.ManipulatorFrame), 1e-6), test.ShouldBeEmpty)
		world, err := p.WorldFrame()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, matrixDiff(origin, world, 1e-6), test.ShouldBeEmpty)
	})

	t.Run("translate", func(t *testing.T) {
		p := newTestProcessor(t, s, 0, WithMode(ModeTranslate))
		test.That(t, matrixDiff(spatialmath.NewTranslationMatrix(r3.Vector{}), mustFrame(t, p.ManipulatorFrame), 0), test.ShouldBeEmpty)
	})
}

func TestTransformOpEdits(t *testing.T) {
	newOp := func(t *testing.T) (*transformop.Stack, transformop.Op) {
		s := transformop.NewStack()
		op := addOp(t, s, transformop.KindTransform, transformop.PrecisionDouble, "")
		setOp(t, op, transformop.MatrixValue(scaledRotatedMatrix))
		return s, op
	}

	t.Run("rotate keeps scale and translation", func(t *testing.T) {
		s, op := newOp(t)
		p := newTestProcessor(t, s, 0, WithMode(ModeRotate))
		test.That(t, p.RotateX(utils.DegToRad(45), SpaceTransform), test.ShouldBeNil)

		expected := spatialmath.NewMatrixFromRows([16]float64{
			4, 0, 0, 0,
			0, 0, 5, 0,
			0, -6, 0, 0,
			1, 2, 3, 1,
		})
		test.That(t, matrixDiff(expected, getOp(t, op).Matrix(), 1e-5), test.ShouldBeEmpty)
	})

	t.Run("translate", func(t *testing.T) {
		s, op := newOp(t)
		p := newTestProcessor(t, s, 0, WithMode(ModeTranslate))
		test.That(t, p.Translate(r3.Vector{X: 1, Y: 1, Z: 1}, SpaceTransform), test.ShouldBeNil)

		expected := spatialmath.SetTranslation(scaledRotatedMatrix, r3.Vector{X: 2, Y: 3, Z: 4})
		test.That(t, matrixDiff(expected, getOp(t, op).Matrix(), 1e-12), test.ShouldBeEmpty)
	})

	t.Run("scale", func(t *testing.T) {
		s, op := newOp(t)
		p := newTestProcessor(t, s, 0, WithMode(ModeScale))
		ok, err := p.Scale(r3.Vector{X: 2, Y: 1, Z: 1}, SpaceTransform)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)

		m := getOp(t, op).Matrix()
		test.That(t, m.At(0, 0), test.ShouldAlmostEqual, 8, 1e-12)
		test.That(t, m.At(1, 1), test.ShouldAlmostEqual, 3.535534, 1e-12)
		vecShouldAlmostEqual(t, spatialmath.Translation(m), r3.Vector{X: 1, Y: 2, Z: 3}, 1e-12)

		ok, err = p.Scale(r3.Vector{X: 2, Y: 1, Z: 1}, SpaceWorld)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeFalse)
	})

	t.Run("inverse op", func(t *testing.T) {
		s, op := newOp(t)
		_, err := s.AddInverseOp(op.Name())
		test.That(t, err, test.ShouldBeNil)

		p := newTestProcessor(t, s, 1, WithMode(ModeTranslate))
		test.That(t, p.Translate(r3.Vector{X: 1}, SpaceTransform), test.ShouldBeNil)

		inverse := transformop.OpMatrix(s.Ops()[1], transformop.DefaultTime())
		expected := spatialmath.SetTranslation(scaledRotatedMatrix.Inv(),
			spatialmath.Translation(scaledRotatedMatrix.Inv()).Add(r3.Vector{X: 1}))
		test.That(t, matrixDiff(expected, inverse, 1e-9), test.ShouldBeEmpty)
	})
}
