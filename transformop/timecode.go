package transformop

import "strconv"

// TimeCode identifies the sample an op value is read from or written to. The zero TimeCode is the
// default (non time-varying) value.
type TimeCode struct {
	time float64
	set  bool
}

// DefaultTime returns the TimeCode addressing an op's default value.
func DefaultTime() TimeCode {
	return TimeCode{}
}

// TimeAt returns the TimeCode addressing the sample at t.
func TimeAt(t float64) TimeCode {
	return TimeCode{time: t, set: true}
}

// IsDefault reports whether tc addresses the default value.
func (tc TimeCode) IsDefault() bool {
	return !tc.set
}

// Time returns the sample time. It is zero for the default TimeCode.
func (tc TimeCode) Time() float64 {
	return tc.time
}

func (tc TimeCode) String() string {
	if tc.IsDefault() {
		return "default"
	}
	return strconv.FormatFloat(tc.time, 'g', -1, 64)
}
