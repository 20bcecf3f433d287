package cli

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/xformop/spatialmath"
	"go.viam.com/xformop/transformop"
)

const invertSuffix = "!invert"

// opSpec is an op given on the command line as KIND[:SUFFIX][@PRECISION][!invert][=V1,V2,...].
type opSpec struct {
	kind      transformop.Kind
	suffix    string
	precision transformop.Precision
	inverse   bool
	values    []float64
}

func (s opSpec) name() string {
	return transformop.OpName(s.kind, s.suffix)
}

func parseOpSpec(raw string) (opSpec, error) {
	var spec opSpec
	head, values, hasValues := strings.Cut(raw, "=")

	head, spec.inverse = strings.CutSuffix(head, invertSuffix)
	if spec.inverse && hasValues {
		return opSpec{}, errors.Errorf("inverse op %q cannot have values", raw)
	}

	head, precision, hasPrecision := strings.Cut(head, "@")
	if hasPrecision {
		p, err := transformop.ParsePrecision(precision)
		if err != nil {
			return opSpec{}, errors.Wrapf(err, "op %q", raw)
		}
		spec.precision = p
	}

	kind, suffix, _ := strings.Cut(head, ":")
	k, err := transformop.ParseKind(kind)
	if err != nil {
		return opSpec{}, errors.Wrapf(err, "op %q", raw)
	}
	spec.kind = k
	spec.suffix = suffix

	if hasValues {
		floats, err := parseFloats(values)
		if err != nil {
			return opSpec{}, errors.Wrapf(err, "op %q", raw)
		}
		spec.values = floats
	}
	return spec, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	floats := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad number %q", part)
		}
		floats = append(floats, f)
	}
	return floats, nil
}

// parseVector parses "x,y,z", or a single number used for all three components.
func parseVector(s string) (r3.Vector, error) {
	floats, err := parseFloats(s)
	if err != nil {
		return r3.Vector{}, err
	}
	switch len(floats) {
	case 1:
		return r3.Vector{X: floats[0], Y: floats[0], Z: floats[0]}, nil
	case 3:
		return r3.Vector{X: floats[0], Y: floats[1], Z: floats[2]}, nil
	default:
		return r3.Vector{}, errors.Errorf("expected 1 or 3 numbers, got %d", len(floats))
	}
}

var valueLengths = map[transformop.ValueType]int{
	transformop.ValueTypeScalar: 1,
	transformop.ValueTypeVec3:   3,
	transformop.ValueTypeQuat:   4,
	transformop.ValueTypeMatrix: 16,
}

// valueFromFloats builds a value of the type stored by kind k. Quaternions are given as w,x,y,z and
// matrices row by row.
func valueFromFloats(k transformop.Kind, floats []float64) (transformop.Value, error) {
	typ := k.ValueType()
	if want := valueLengths[typ]; len(floats) != want {
		return transformop.Value{}, errors.Errorf("%s op takes %d values, got %d", k, want, len(floats))
	}
	switch typ {
	case transformop.ValueTypeScalar:
		return transformop.ScalarValue(floats[0]), nil
	case transformop.ValueTypeVec3:
		return transformop.Vec3Value(r3.Vector{X: floats[0], Y: floats[1], Z: floats[2]}), nil
	case transformop.ValueTypeQuat:
		return transformop.QuatValue(quat.Number{Real: floats[0], Imag: floats[1], Jmag: floats[2], Kmag: floats[3]}), nil
	default:
		var rows [16]float64
		copy(rows[:], floats)
		return transformop.MatrixValue(spatialmath.NewMatrixFromRows(rows)), nil
	}
}

// buildStack creates a stack from op specs, authoring the given values at tc.
func buildStack(raw []string, tc transformop.TimeCode) (*transformop.Stack, error) {
	if len(raw) == 0 {
		return nil, errors.New("no ops given")
	}
	specs := make([]opSpec, 0, len(raw))
	for _, r := range raw {
		spec, err := parseOpSpec(r)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	stack := transformop.NewStack()
	for _, spec := range specs {
		if spec.inverse {
			if _, err := stack.AddInverseOp(spec.name()); err != nil {
				return nil, err
			}
			continue
		}
		op, err := stack.AddOp(spec.kind, spec.precision, spec.suffix)
		if err != nil {
			return nil, err
		}
		if spec.values == nil {
			continue
		}
		v, err := valueFromFloats(spec.kind, spec.values)
		if err != nil {
			return nil, errors.Wrapf(err, "op %q", op.Name())
		}
		if err := op.Set(v, tc); err != nil {
			return nil, err
		}
	}
	if err := stack.Validate(); err != nil {
		return nil, err
	}
	return stack, nil
}

func formatRow(row []float64) string {
	return strings.Join(lo.Map(row, func(f float64, _ int) string {
		return strconv.FormatFloat(f, 'f', 6, 64)
	}), " ")
}
