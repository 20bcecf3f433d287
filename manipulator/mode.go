// Package manipulator edits a single op of a transform op stack from translate, rotate and scale
// deltas expressed in the op's own space, its parent's space or world space.
package manipulator

import (
	"strings"

	"github.com/pkg/errors"

	"go.viam.com/xformop/transformop"
)

// Mode is the kind of edit a Processor performs.
type Mode int

// The manipulation modes.
const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	default:
		return "unknown"
	}
}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeTranslate, ModeRotate, ModeScale} {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown manipulation mode %q", s)
}

// Space is the coordinate space an edit delta is expressed in.
type Space int

// The edit spaces.
const (
	// SpaceTransform is the op's own space: deltas are applied to the stored value directly.
	SpaceTransform Space = iota
	// SpaceParent is the space of the prim's parent.
	SpaceParent
	// SpaceWorld is absolute scene space.
	SpaceWorld
)

func (s Space) String() string {
	switch s {
	case SpaceTransform:
		return "transform"
	case SpaceParent:
		return "parent"
	case SpaceWorld:
		return "world"
	default:
		return "unknown"
	}
}

// ParseSpace returns the Space named by s.
func ParseSpace(s string) (Space, error) {
	for _, sp := range []Space{SpaceTransform, SpaceParent, SpaceWorld} {
		if strings.EqualFold(sp.String(), s) {
			return sp, nil
		}
	}
	return 0, errors.Errorf("unknown space %q", s)
}

// ErrModeRequired is returned when a processor is created for a transform op without WithMode.
var ErrModeRequired = errors.New("a manipulation mode is required to edit a transform op")

// modeForKind returns the mode implied by an op kind. ok is false for transform ops, which can be
// edited in any mode.
func modeForKind(k transformop.Kind) (Mode, bool) {
	switch {
	case k == transformop.KindTranslate:
		return ModeTranslate, true
	case k == transformop.KindScale:
		return ModeScale, true
	case k.IsRotation():
		return ModeRotate, true
	default:
		return 0, false
	}
}
