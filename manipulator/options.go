package manipulator

import (
	"go.viam.com/xformop/logging"
	"go.viam.com/xformop/transformop"
)

const defaultScaleTolerance = 1e-6

// options configures a Processor.
type options struct {
	mode           *Mode
	timeCode       transformop.TimeCode
	logger         logging.Logger
	scaleTolerance float64
}

func defaultOptions() options {
	return options{
		timeCode:       transformop.DefaultTime(),
		scaleTolerance: defaultScaleTolerance,
	}
}

// Option configures how a Processor reads and edits its op.
type Option interface {
	apply(*options)
}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fdo *funcOption) apply(do *options) {
	fdo.f(do)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithMode forces the manipulation mode. It is required for transform ops and must agree with the
// op kind otherwise.
func WithMode(mode Mode) Option {
	return newFuncOption(func(o *options) {
		o.mode = &mode
	})
}

// WithTimeCode sets the time at which values are read and written.
func WithTimeCode(tc transformop.TimeCode) Option {
	return newFuncOption(func(o *options) {
		o.timeCode = tc
	})
}

// WithLogger sets the logger. By default a sublogger of the global logger is used.
func WithLogger(logger logging.Logger) Option {
	return newFuncOption(func(o *options) {
		o.logger = logger
	})
}

// WithScaleTolerance sets how far from diagonal a parent space scale may be before it is rejected.
func WithScaleTolerance(tolerance float64) Option {
	return newFuncOption(func(o *options) {
		o.scaleTolerance = tolerance
	})
}
