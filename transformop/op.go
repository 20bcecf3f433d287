package transformop

import "strings"

// InvertPrefix marks the name of an op that applies the inverse of another op's attribute.
const InvertPrefix = "!invert!"

// Op is a single operation of a transform stack. Ops are owned by the stack that holds them;
// the evaluator and manipulator only read and write their values.
type Op interface {
	// Name identifies the op within its stack, e.g. "xformOp:rotateXYZ" or "!invert!xformOp:translate:pivot".
	Name() string
	Kind() Kind
	Precision() Precision
	// IsInverse reports whether the op applies the inverse of its value.
	IsInverse() bool
	// Get returns the value at tc and whether one has been authored.
	Get(tc TimeCode) (Value, bool)
	// Set authors v at tc, rounded to the op's precision.
	Set(v Value, tc TimeCode) error
}

// OpName returns the attribute name of an op of kind k with an optional suffix.
func OpName(k Kind, suffix string) string {
	name := "xformOp:" + k.String()
	if suffix != "" {
		name += ":" + suffix
	}
	return name
}

// AttributeName strips the invert prefix from an op name.
func AttributeName(opName string) string {
	return strings.TrimPrefix(opName, InvertPrefix)
}

// ValueOrIdentity returns the op value at tc, or the identity value for its kind when nothing has been authored.
func ValueOrIdentity(op Op, tc TimeCode) Value {
	v, ok := op.Get(tc)
	if !ok || v.Type() != op.Kind().ValueType() {
		return IdentityValue(op.Kind())
	}
	return v
}
