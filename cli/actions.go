package cli

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/xformop/logging"
	"go.viam.com/xformop/manipulator"
	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/transformop"
	"go.viam.com/xformop/utils"
)

func timeCode(c *cli.Context) transformop.TimeCode {
	if c.IsSet(generalFlagTime) {
		return transformop.TimeAt(c.Float64(generalFlagTime))
	}
	return transformop.DefaultTime()
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger("xformop")
	}
	return logging.NewLogger("xformop")
}

// EvalAction prints the coordinate frame before each op of the stack given as arguments.
func EvalAction(c *cli.Context) error {
	tc := timeCode(c)
	stack, err := buildStack(c.Args().Slice(), tc)
	if err != nil {
		return err
	}
	ops := stack.Ops()

	indices := lo.RangeFrom(0, len(ops)+1)
	if index := c.Int(evalFlagIndex); index >= 0 {
		indices = []int{index}
	}
	for _, i := range indices {
		frame, err := transformop.EvaluateCoordinateFrameForIndex(ops, i, tc)
		if err != nil {
			return err
		}
		if i < len(ops) {
			printf(c.App.Writer, "frame %d (before %s)", i, ops[i].Name())
		} else {
			printf(c.App.Writer, "frame %d (local transformation)", i)
		}
		printMatrix(c.App.Writer, frame)
	}
	return nil
}

// EditAction applies one edit to the target op of the stack given as arguments and prints the
// resulting op value and local transformation.
func EditAction(c *cli.Context) error {
	logger := newLogger(c)
	tc := timeCode(c)
	stack, err := buildStack(c.Args().Slice(), tc)
	if err != nil {
		return err
	}
	space, err := manipulator.ParseSpace(c.String(editFlagSpace))
	if err != nil {
		return err
	}

	opts := []manipulator.Option{manipulator.WithTimeCode(tc), manipulator.WithLogger(logger)}
	if c.IsSet(editFlagMode) {
		mode, err := manipulator.ParseMode(c.String(editFlagMode))
		if err != nil {
			return err
		}
		opts = append(opts, manipulator.WithMode(mode))
	}
	p, err := manipulator.NewProcessor(manipulator.NewStandalonePrim("cli", stack), c.Int(editFlagTarget), opts...)
	if err != nil {
		return err
	}

	edits := lo.Filter([]string{
		editFlagTranslate, editFlagRotateX, editFlagRotateY, editFlagRotateZ, editFlagScale,
	}, func(name string, _ int) bool { return c.IsSet(name) })
	if len(edits) != 1 {
		return errors.Errorf("exactly one of --%s, --%s, --%s, --%s or --%s is required",
			editFlagTranslate, editFlagRotateX, editFlagRotateY, editFlagRotateZ, editFlagScale)
	}

	logger.Debugw("editing op", "op", p.Op().Name(), "mode", p.Mode().String(), "space", space.String(), "edit", edits[0])
	switch edits[0] {
	case editFlagTranslate:
		delta, err := parseVector(c.String(editFlagTranslate))
		if err != nil {
			return errors.Wrapf(err, "--%s", editFlagTranslate)
		}
		err = p.Translate(delta, space)
		if err != nil {
			return err
		}
	case editFlagRotateX:
		if err := p.RotateX(utils.DegToRad(c.Float64(editFlagRotateX)), space); err != nil {
			return err
		}
	case editFlagRotateY:
		if err := p.RotateY(utils.DegToRad(c.Float64(editFlagRotateY)), space); err != nil {
			return err
		}
	case editFlagRotateZ:
		if err := p.RotateZ(utils.DegToRad(c.Float64(editFlagRotateZ)), space); err != nil {
			return err
		}
	case editFlagScale:
		delta, err := parseVector(c.String(editFlagScale))
		if err != nil {
			return errors.Wrapf(err, "--%s", editFlagScale)
		}
		ok, err := p.Scale(delta, space)
		if err != nil {
			return err
		}
		if !ok {
			warningf(c.App.ErrWriter, "scale (%g, %g, %g) cannot be applied to %s in %s space",
				delta.X, delta.Y, delta.Z, p.Op().Name(), space)
		}
	}

	value := transformop.ValueOrIdentity(p.Op(), tc)
	printf(c.App.Writer, "%s = %s", p.Op().Name(), value)
	if value.Type() == transformop.ValueTypeQuat {
		aa := spatialmath.QuatToR4AA(value.Quat())
		printf(c.App.Writer, "  %g degrees about (%g, %g, %g)", utils.RadToDeg(aa.Theta), aa.RX, aa.RY, aa.RZ)
	}
	printf(c.App.Writer, "local transformation")
	printMatrix(c.App.Writer, stack.LocalTransformation(tc))
	return nil
}
