package referenceframe

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"go.viam.com/xformop/transformop"
	"go.viam.com/xformop/utils"
)

// World is the string "world", but made into an exported constant.
const World = "world"

// FrameSystem represents a tree of frames connected to each other, allowing the world transform of any frame to be resolved.
type FrameSystem interface {
	// Name returns the name of this FrameSystem
	Name() string

	// World returns the frame corresponding to the root of the FrameSystem, from which other frames are defined with respect to
	World() Frame

	// FrameNames returns the names of all of the frames that exist in the FrameSystem, sorted
	FrameNames() []string

	// Frame returns the Frame in the FrameSystem with the given name, or nil
	Frame(name string) Frame

	// AddFrame inserts a given Frame into the FrameSystem as a child of the parent Frame
	AddFrame(frame, parent Frame) error

	// AddPrim creates a PrimFrame driven by stack as a child of the named parent and returns it bound to the FrameSystem
	AddPrim(name string, stack *transformop.Stack, parentName string) (*Prim, error)

	// RemoveFrame removes the given Frame and all of its descendents from the FrameSystem
	RemoveFrame(frame Frame)

	// RemovePrim removes the named frame and all of its descendents
	RemovePrim(name string) error

	// TracebackFrame traces the parentage of the given frame up to the world, and returns the full list of frames in between.
	// The list will include both the query frame and the world referenceframe
	TracebackFrame(frame Frame) ([]Frame, error)

	// Parent returns the parent Frame for the given Frame in the FrameSystem
	Parent(frame Frame) (Frame, error)

	// Prim returns the named PrimFrame bound to this FrameSystem
	Prim(name string) (*Prim, error)

	// WorldTransform returns the matrix taking the named frame to world
	WorldTransform(name string, tc transformop.TimeCode) (mgl64.Mat4, error)

	// ParentWorldTransform returns the world transform of the named frame's parent; identity for children of the world
	ParentWorldTransform(name string, tc transformop.TimeCode) (mgl64.Mat4, error)
}

// simpleFrameSystem implements FrameSystem. It is a simple tree graph.
type simpleFrameSystem struct {
	name    string
	world   Frame // separate from the map of frames so it can be detached easily
	frames  map[string]Frame
	parents map[Frame]Frame
}

// NewEmptyFrameSystem creates a graph of Frames that only contains the world.
func NewEmptyFrameSystem(name string) FrameSystem {
	worldFrame := NewZeroStaticFrame(World)
	return &simpleFrameSystem{name, worldFrame, map[string]Frame{}, map[Frame]Frame{}}
}

// Name returns the name of the simpleFrameSystem.
func (sfs *simpleFrameSystem) Name() string {
	return sfs.name
}

// World returns the base world referenceframe.
func (sfs *simpleFrameSystem) World() Frame {
	return sfs.world
}

var errNoParent = errors.New("no parent")

// Parent returns the parent frame of the input referenceframe. errNoParent if input is World.
func (sfs *simpleFrameSystem) Parent(frame Frame) (Frame, error) {
	f := sfs.registered(frame)
	if f == nil {
		return nil, NewFrameMissingError(frame.Name())
	}
	if f == sfs.world {
		return nil, errNoParent
	}
	return sfs.parents[f], nil
}

// registered returns the frame stored under frame's name, so that wrappers such as *Prim resolve
// to the value keyed in parents. Returns nil if no such frame exists.
func (sfs *simpleFrameSystem) registered(frame Frame) Frame {
	if frame == nil {
		return nil
	}
	return sfs.Frame(frame.Name())
}

// frameExists is a helper function to see if a frame with a given name already exists in the system.
func (sfs *simpleFrameSystem) frameExists(name string) bool {
	if name == World {
		return true
	}
	_, ok := sfs.frames[name]
	return ok
}

// RemoveFrame will delete the given frame and all descendents from the frame system if it exists.
func (sfs *simpleFrameSystem) RemoveFrame(frame Frame) {
	frame = sfs.registered(frame)
	if frame == nil || frame == sfs.world {
		return
	}
	delete(sfs.frames, frame.Name())
	delete(sfs.parents, frame)

	// Remove all descendents
	for f, parent := range sfs.parents {
		if parent == frame {
			sfs.RemoveFrame(f)
		}
	}
}

// Frame returns the frame given the name of the referenceframe. Returns nil if the frame is not found.
func (sfs *simpleFrameSystem) Frame(name string) Frame {
	if !sfs.frameExists(name) {
		return nil
	}
	if name == World {
		return sfs.world
	}
	return sfs.frames[name]
}

// TracebackFrame traces the parentage of the given frame up to the world, and returns the full list of frames in between.
// The list will include both the query frame and the world referenceframe.
func (sfs *simpleFrameSystem) TracebackFrame(query Frame) ([]Frame, error) {
	f := sfs.registered(query)
	if f == nil {
		return nil, NewFrameMissingError(query.Name())
	}
	query = f
	if query == sfs.world {
		return []Frame{query}, nil
	}
	parents, err := sfs.TracebackFrame(sfs.parents[query])
	if err != nil {
		return nil, err
	}
	return append([]Frame{query}, parents...), nil
}

// FrameNames returns the sorted list of frame names registered in the frame system.
func (sfs *simpleFrameSystem) FrameNames() []string {
	frameNames := make([]string, 0, len(sfs.frames))
	for k := range sfs.frames {
		frameNames = append(frameNames, k)
	}
	sort.Strings(frameNames)
	return frameNames
}

func (sfs *simpleFrameSystem) checkName(name string, parent Frame) error {
	// check to see if parent is in system
	if !sfs.frameExists(parent.Name()) {
		return errors.Errorf("parent frame with name %q not in frame system", parent.Name())
	}
	// check if frame with that name is already in system
	if sfs.frameExists(name) {
		return errors.Errorf("frame with name %q already in frame system", name)
	}
	return nil
}

// AddFrame sets an already defined Frame into the system.
func (sfs *simpleFrameSystem) AddFrame(frame, parent Frame) error {
	if parent == nil {
		return NewParentFrameMissingError()
	}
	if err := sfs.checkName(frame.Name(), parent); err != nil {
		return err
	}
	sfs.frames[frame.Name()] = frame
	sfs.parents[frame] = sfs.Frame(parent.Name())
	return nil
}

// AddPrim adds a prim driven by stack under the named parent.
func (sfs *simpleFrameSystem) AddPrim(name string, stack *transformop.Stack, parentName string) (*Prim, error) {
	if stack == nil {
		return nil, errors.Errorf("prim %q has a nil op stack", name)
	}
	parent := sfs.Frame(parentName)
	if parent == nil {
		return nil, errors.Errorf("parent frame with name %q not in frame system", parentName)
	}
	pf := NewPrimFrame(name, stack)
	if err := sfs.AddFrame(pf, parent); err != nil {
		return nil, err
	}
	return &Prim{pf, sfs}, nil
}

// RemovePrim removes the named frame and its descendents.
func (sfs *simpleFrameSystem) RemovePrim(name string) error {
	if name == World {
		return errors.New("cannot remove the world frame")
	}
	frame := sfs.Frame(name)
	if frame == nil {
		return NewFrameMissingError(name)
	}
	sfs.RemoveFrame(frame)
	return nil
}

// Prim returns the named PrimFrame bound to this frame system.
func (sfs *simpleFrameSystem) Prim(name string) (*Prim, error) {
	frame := sfs.Frame(name)
	if frame == nil {
		return nil, NewFrameMissingError(name)
	}
	pf, err := utils.AssertType[*PrimFrame](frame)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %q has no transform op stack", name)
	}
	return &Prim{pf, sfs}, nil
}

// WorldTransform composes the local transforms from the named frame up to the world: child * parent * ... .
func (sfs *simpleFrameSystem) WorldTransform(name string, tc transformop.TimeCode) (mgl64.Mat4, error) {
	frame := sfs.Frame(name)
	if frame == nil {
		return mgl64.Ident4(), NewFrameMissingError(name)
	}
	chain, err := sfs.TracebackFrame(frame)
	if err != nil {
		return mgl64.Ident4(), err
	}
	m := mgl64.Ident4()
	for _, f := range chain {
		m = m.Mul4(f.LocalTransform(tc))
	}
	return m, nil
}

// ParentWorldTransform returns the world transform of the named frame's parent.
func (sfs *simpleFrameSystem) ParentWorldTransform(name string, tc transformop.TimeCode) (mgl64.Mat4, error) {
	frame := sfs.Frame(name)
	if frame == nil {
		return mgl64.Ident4(), NewFrameMissingError(name)
	}
	parent, err := sfs.Parent(frame)
	if err != nil {
		if errors.Is(err, errNoParent) {
			return mgl64.Ident4(), nil
		}
		return mgl64.Ident4(), err
	}
	return sfs.WorldTransform(parent.Name(), tc)
}
