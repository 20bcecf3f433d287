package transformop

import (
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Precision is the floating point width an op stores its value with.
type Precision int

// The supported storage precisions.
const (
	PrecisionDouble Precision = iota
	PrecisionFloat
	PrecisionHalf
)

func (p Precision) String() string {
	switch p {
	case PrecisionDouble:
		return "double"
	case PrecisionFloat:
		return "float"
	case PrecisionHalf:
		return "half"
	default:
		return "unknown"
	}
}

// ParsePrecision returns the Precision named by s.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "double", "64":
		return PrecisionDouble, nil
	case "float", "32":
		return PrecisionFloat, nil
	case "half", "16":
		return PrecisionHalf, nil
	default:
		return 0, errors.Errorf("unknown precision %q", s)
	}
}

// Quantize rounds x to the nearest value representable at precision p.
func (p Precision) Quantize(x float64) float64 {
	switch p {
	case PrecisionFloat:
		return float64(float32(x))
	case PrecisionHalf:
		return float64(float16.Fromfloat32(float32(x)).Float32())
	default:
		return x
	}
}
