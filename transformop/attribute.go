package transformop

import (
	"sort"

	"github.com/pkg/errors"
)

// Attribute is in-memory storage for an op value: an optional default value plus time samples.
// Reads between samples hold the earlier sample; reads before the first sample return the first.
// Attribute is not safe for concurrent use.
type Attribute struct {
	name      string
	kind      Kind
	precision Precision

	defaultValue *Value
	samples      map[float64]Value
	times        []float64
}

// NewAttribute returns an attribute with no authored value.
func NewAttribute(name string, kind Kind, precision Precision) *Attribute {
	return &Attribute{name: name, kind: kind, precision: precision, samples: map[float64]Value{}}
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// Kind returns the op kind the attribute stores values for.
func (a *Attribute) Kind() Kind { return a.kind }

// Precision returns the storage precision.
func (a *Attribute) Precision() Precision { return a.precision }

// HasValue reports whether a default value or any time sample has been authored.
func (a *Attribute) HasValue() bool {
	return a.defaultValue != nil || len(a.times) > 0
}

// TimeSamples returns the authored sample times in increasing order.
func (a *Attribute) TimeSamples() []float64 {
	return append([]float64(nil), a.times...)
}

// Get returns the value at tc and whether one has been authored.
func (a *Attribute) Get(tc TimeCode) (Value, bool) {
	if tc.IsDefault() || len(a.times) == 0 {
		if a.defaultValue == nil {
			return Value{}, false
		}
		return *a.defaultValue, true
	}
	// last sample at or before tc
	i := sort.SearchFloat64s(a.times, tc.Time())
	if i == len(a.times) || a.times[i] != tc.Time() {
		i--
	}
	if i < 0 {
		i = 0
	}
	return a.samples[a.times[i]], true
}

// Set authors v at tc after rounding it to the attribute precision.
func (a *Attribute) Set(v Value, tc TimeCode) error {
	if v.Type() != a.kind.ValueType() {
		return errors.Errorf("cannot set %s value on %s attribute %q", v.Type(), a.kind, a.name)
	}
	v = v.Quantize(a.precision)
	if tc.IsDefault() {
		a.defaultValue = &v
		return nil
	}
	if _, ok := a.samples[tc.Time()]; !ok {
		i := sort.SearchFloat64s(a.times, tc.Time())
		a.times = append(a.times, 0)
		copy(a.times[i+1:], a.times[i:])
		a.times[i] = tc.Time()
	}
	a.samples[tc.Time()] = v
	return nil
}

// Clear removes every authored value.
func (a *Attribute) Clear() {
	a.defaultValue = nil
	a.samples = map[float64]Value{}
	a.times = nil
}

// attributeOp is an Op backed by an Attribute. A forward op and its inverse share the attribute.
type attributeOp struct {
	attr    *Attribute
	inverse bool
}

// NewOp returns an Op reading and writing attr.
func NewOp(attr *Attribute, inverse bool) Op {
	return &attributeOp{attr: attr, inverse: inverse}
}

func (op *attributeOp) Name() string {
	if op.inverse {
		return InvertPrefix + op.attr.name
	}
	return op.attr.name
}

func (op *attributeOp) Kind() Kind {
	return op.attr.kind
}

func (op *attributeOp) Precision() Precision {
	return op.attr.precision
}

func (op *attributeOp) IsInverse() bool {
	return op.inverse
}

func (op *attributeOp) Get(tc TimeCode) (Value, bool) {
	return op.attr.Get(tc)
}

func (op *attributeOp) Set(v Value, tc TimeCode) error {
	return op.attr.Set(v, tc)
}

