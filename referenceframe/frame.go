// Package referenceframe arranges prims in a parent/child hierarchy so that the world transform of
// a prim, and of its parent, can be resolved from the transform op stacks along the way.
package referenceframe

import (
	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/xformop/transformop"
)

// Frame is a node of a FrameSystem.
type Frame interface {
	// Name returns the name of the frame.
	Name() string

	// LocalTransform is the matrix that goes FROM the current frame TO its parent frame.
	LocalTransform(tc transformop.TimeCode) mgl64.Mat4
}

// a staticFrame is a frame whose local transform is fixed for all time.
type staticFrame struct {
	name      string
	transform mgl64.Mat4
}

// NewStaticFrame creates a frame given a matrix relative to its parent.
func NewStaticFrame(name string, transform mgl64.Mat4) Frame {
	return &staticFrame{name, transform}
}

// NewZeroStaticFrame creates a frame with no translation or orientation changes.
func NewZeroStaticFrame(name string) Frame {
	return &staticFrame{name, mgl64.Ident4()}
}

func (sf *staticFrame) Name() string {
	return sf.name
}

func (sf *staticFrame) LocalTransform(tc transformop.TimeCode) mgl64.Mat4 {
	return sf.transform
}

// PrimFrame is a frame whose local transform is composed from a transform op stack.
type PrimFrame struct {
	name  string
	stack *transformop.Stack
}

// NewPrimFrame creates a frame driven by stack.
func NewPrimFrame(name string, stack *transformop.Stack) *PrimFrame {
	return &PrimFrame{name, stack}
}

// Name returns the prim name.
func (pf *PrimFrame) Name() string {
	return pf.name
}

// Stack returns the op stack of the prim.
func (pf *PrimFrame) Stack() *transformop.Stack {
	return pf.stack
}

// Ops returns the ordered ops of the prim.
func (pf *PrimFrame) Ops() []transformop.Op {
	return pf.stack.Ops()
}

// LocalTransform returns the composition of every op of the prim at tc.
func (pf *PrimFrame) LocalTransform(tc transformop.TimeCode) mgl64.Mat4 {
	return pf.stack.LocalTransformation(tc)
}

// Prim is a PrimFrame bound to the frame system it lives in, so that its parent's world transform
// can be resolved.
type Prim struct {
	*PrimFrame
	fs FrameSystem
}

// ParentWorldTransform returns the world transform of the prim's parent frame.
func (p *Prim) ParentWorldTransform(tc transformop.TimeCode) (mgl64.Mat4, error) {
	return p.fs.ParentWorldTransform(p.Name(), tc)
}
