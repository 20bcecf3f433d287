package manipulator

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"go.viam.com/xformop/logging"
	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/transformop"
	"go.viam.com/xformop/utils"
)

// Processor edits one op of a prim's op stack. It holds no state besides the op it is bound to:
// frames are evaluated fresh on every call and edits accumulate on the op's current value.
// A Processor is meant to live for one interactive edit and is not safe for concurrent use.
type Processor struct {
	prim           Prim
	opIndex        int
	op             transformop.Op
	mode           Mode
	tc             transformop.TimeCode
	logger         logging.Logger
	scaleTolerance float64
}

// NewProcessor returns a Processor editing the op at opIndex of prim's stack.
func NewProcessor(prim Prim, opIndex int, opts ...Option) (*Processor, error) {
	if prim == nil {
		return nil, errors.New("prim is nil")
	}
	ops := prim.Ops()
	if opIndex < 0 || opIndex >= len(ops) {
		return nil, utils.NewIndexOutOfRangeError("op", opIndex, len(ops))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	op := ops[opIndex]
	mode, err := resolveMode(op, o.mode)
	if err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Global().Sublogger("manipulator")
	}

	return &Processor{
		prim:           prim,
		opIndex:        opIndex,
		op:             op,
		mode:           mode,
		tc:             o.timeCode,
		logger:         logger,
		scaleTolerance: o.scaleTolerance,
	}, nil
}

// NewProcessorForOp returns a Processor editing the op named opName.
func NewProcessorForOp(prim Prim, opName string, opts ...Option) (*Processor, error) {
	if prim == nil {
		return nil, errors.New("prim is nil")
	}
	for i, op := range prim.Ops() {
		if op.Name() == opName {
			return NewProcessor(prim, i, opts...)
		}
	}
	return nil, errors.Errorf("prim %q has no op named %q", prim.Name(), opName)
}

func resolveMode(op transformop.Op, override *Mode) (Mode, error) {
	implied, ok := modeForKind(op.Kind())
	if !ok {
		if override == nil {
			return 0, errors.Wrapf(ErrModeRequired, "op %q", op.Name())
		}
		return *override, nil
	}
	if override != nil && *override != implied {
		return 0, errors.Errorf("cannot %s op %q of kind %s", *override, op.Name(), op.Kind())
	}
	return implied, nil
}

// Mode returns the manipulation mode.
func (p *Processor) Mode() Mode {
	return p.mode
}

// Op returns the op being edited.
func (p *Processor) Op() transformop.Op {
	return p.op
}

// OpIndex returns the index of the op being edited.
func (p *Processor) OpIndex() int {
	return p.opIndex
}

// TimeCode returns the time at which the op is read and written.
func (p *Processor) TimeCode() transformop.TimeCode {
	return p.tc
}

// CoordinateFrame returns the composition of every op before the edited op. It fails if the prim no
// longer holds the op at the processor's index.
func (p *Processor) CoordinateFrame() (mgl64.Mat4, error) {
	if err := p.checkOp(); err != nil {
		return mgl64.Ident4(), err
	}
	m, err := transformop.EvaluateCoordinateFrameForIndex(p.prim.Ops(), p.opIndex, p.tc)
	if err != nil {
		return mgl64.Ident4(), errors.Wrapf(err, "cannot evaluate coordinate frame of op %q", p.op.Name())
	}
	return m, nil
}

// ManipulatorFrame returns the frame the edited op's delta is expressed in. It is the coordinate
// frame, except for transform ops rotated or scaled, which are manipulated about their own origin
// with scale and shear stripped from the frame.
func (p *Processor) ManipulatorFrame() (mgl64.Mat4, error) {
	frame, err := p.CoordinateFrame()
	if err != nil {
		return frame, err
	}
	if p.op.Kind() != transformop.KindTransform || p.mode == ModeTranslate {
		return frame, nil
	}
	origin := spatialmath.TransformPoint(spatialmath.Translation(p.effectiveMatrix()), frame)
	return spatialmath.SetTranslation(spatialmath.Orthonormalize(frame), origin), nil
}

// ParentFrame returns the world transform of the prim's parent.
func (p *Processor) ParentFrame() (mgl64.Mat4, error) {
	m, err := p.prim.ParentWorldTransform(p.tc)
	if err != nil {
		return mgl64.Ident4(), errors.Wrapf(err, "cannot resolve parent of %q", p.prim.Name())
	}
	return m, nil
}

// WorldFrame returns the manipulator frame in world space.
func (p *Processor) WorldFrame() (mgl64.Mat4, error) {
	frame, err := p.ManipulatorFrame()
	if err != nil {
		return frame, err
	}
	parent, err := p.ParentFrame()
	if err != nil {
		return mgl64.Ident4(), err
	}
	return frame.Mul4(parent), nil
}

// value returns the op's current value, or the identity value when nothing has been authored.
func (p *Processor) value() transformop.Value {
	return transformop.ValueOrIdentity(p.op, p.tc)
}

// effectiveMatrix returns the matrix the op currently contributes.
func (p *Processor) effectiveMatrix() mgl64.Mat4 {
	return transformop.OpMatrix(p.op, p.tc)
}

func (p *Processor) set(v transformop.Value) error {
	if err := p.op.Set(v, p.tc); err != nil {
		return errors.Wrapf(err, "cannot write op %q", p.op.Name())
	}
	return nil
}

// spaceFrame returns the linear part of the frame a delta in space is expressed in, relative to the
// op's space. It is identity for SpaceTransform.
func (p *Processor) spaceFrame(space Space) (mgl64.Mat4, error) {
	switch space {
	case SpaceTransform:
		return mgl64.Ident4(), nil
	case SpaceParent:
		frame, err := p.CoordinateFrame()
		if err != nil {
			return frame, err
		}
		return spatialmath.LinearPart(frame), nil
	case SpaceWorld:
		frame, err := p.CoordinateFrame()
		if err != nil {
			return frame, err
		}
		parent, err := p.ParentFrame()
		if err != nil {
			return mgl64.Ident4(), err
		}
		return spatialmath.LinearPart(frame.Mul4(parent)), nil
	default:
		return mgl64.Ident4(), errors.Errorf("unknown space %d", space)
	}
}

// spaceFrameInverse returns spaceFrame(space) with its inverse.
func (p *Processor) spaceFrameInverse(space Space) (frame, inverse mgl64.Mat4, err error) {
	frame, err = p.spaceFrame(space)
	if err != nil {
		return frame, frame, err
	}
	if det := frame.Det(); det > -singularEpsilon && det < singularEpsilon {
		return frame, frame, errors.Errorf("%s frame of op %q is singular", space, p.op.Name())
	}
	return frame, frame.Inv(), nil
}

const singularEpsilon = 1e-12

func (p *Processor) checkMode(want Mode) error {
	if p.mode != want {
		return errors.Errorf("processor for op %q is in %s mode, cannot %s", p.op.Name(), p.mode, want)
	}
	return p.checkOp()
}

// checkOp fails once the prim's stack no longer has the edited op at the processor's index.
func (p *Processor) checkOp() error {
	ops := p.prim.Ops()
	if p.opIndex >= len(ops) || ops[p.opIndex].Name() != p.op.Name() {
		return errors.Errorf("prim %q no longer has op %q at index %d", p.prim.Name(), p.op.Name(), p.opIndex)
	}
	return nil
}
