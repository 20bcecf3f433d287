package transformop

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Stack is an ordered list of ops. Ops compose left to right: ops[0] is the outermost op, so the
// local transformation is M(ops[n-1]) * ... * M(ops[0]).
type Stack struct {
	ops   []Op
	attrs map[string]*Attribute
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{attrs: map[string]*Attribute{}}
}

// AddOp appends a new op of kind k, backed by a fresh attribute named OpName(k, suffix).
func (s *Stack) AddOp(k Kind, precision Precision, suffix string) (Op, error) {
	name := OpName(k, suffix)
	if _, ok := s.attrs[name]; ok {
		return nil, errors.Errorf("stack already has an attribute named %q", name)
	}
	attr := NewAttribute(name, k, precision)
	s.attrs[name] = attr
	op := NewOp(attr, false)
	s.ops = append(s.ops, op)
	return op, nil
}

// AddInverseOp appends an op applying the inverse of the existing attribute named attrName.
func (s *Stack) AddInverseOp(attrName string) (Op, error) {
	attr, ok := s.attrs[AttributeName(attrName)]
	if !ok {
		return nil, errors.Errorf("no attribute named %q to invert", attrName)
	}
	op := NewOp(attr, true)
	s.ops = append(s.ops, op)
	return op, nil
}

// Append adds externally implemented ops to the end of the stack.
func (s *Stack) Append(ops ...Op) {
	s.ops = append(s.ops, ops...)
}

// Ops returns the ops in order.
func (s *Stack) Ops() []Op {
	return append([]Op(nil), s.ops...)
}

// Len returns the number of ops.
func (s *Stack) Len() int {
	return len(s.ops)
}

// OpNames returns the op names in order.
func (s *Stack) OpNames() []string {
	return lo.Map(s.ops, func(op Op, _ int) string { return op.Name() })
}

// IndexOf returns the index of the op called name, or -1.
func (s *Stack) IndexOf(name string) int {
	_, idx, ok := lo.FindIndexOf(s.ops, func(op Op) bool { return op.Name() == name })
	if !ok {
		return -1
	}
	return idx
}

// Attribute returns the attribute called name, if the stack created it.
func (s *Stack) Attribute(name string) (*Attribute, bool) {
	attr, ok := s.attrs[name]
	return attr, ok
}

// LocalTransformation returns the matrix composed from every op in the stack.
func (s *Stack) LocalTransformation(tc TimeCode) mgl64.Mat4 {
	return LocalTransformation(s.ops, tc)
}

// Validate checks that op names are unique and that every inverse op follows the forward op it inverts.
func (s *Stack) Validate() error {
	var errs error
	seen := map[string]bool{}
	forward := map[string]bool{}
	for i, op := range s.ops {
		if seen[op.Name()] {
			errs = multierr.Append(errs, errors.Errorf("op %d: duplicate op name %q", i, op.Name()))
		}
		seen[op.Name()] = true
		if !op.IsInverse() {
			forward[op.Name()] = true
			continue
		}
		if !forward[AttributeName(op.Name())] {
			errs = multierr.Append(errs, errors.Errorf("op %d: inverse op %q has no preceding forward op", i, op.Name()))
		}
	}
	return errs
}
