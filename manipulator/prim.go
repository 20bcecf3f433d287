package manipulator

import (
	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/xformop/transformop"
)

// Prim is the object whose op stack a Processor edits.
type Prim interface {
	Name() string
	// Ops returns the op stack, first op outermost.
	Ops() []transformop.Op
	// ParentWorldTransform returns the world transform of the prim's parent.
	ParentWorldTransform(tc transformop.TimeCode) (mgl64.Mat4, error)
}

type standalonePrim struct {
	name  string
	stack *transformop.Stack
}

// NewStandalonePrim returns a Prim for stack with no parent; its parent world transform is identity.
func NewStandalonePrim(name string, stack *transformop.Stack) Prim {
	return &standalonePrim{name: name, stack: stack}
}

func (p *standalonePrim) Name() string {
	return p.name
}

func (p *standalonePrim) Ops() []transformop.Op {
	return p.stack.Ops()
}

func (p *standalonePrim) ParentWorldTransform(tc transformop.TimeCode) (mgl64.Mat4, error) {
	return mgl64.Ident4(), nil
}
