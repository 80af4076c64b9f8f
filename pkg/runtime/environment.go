package runtime

import (
	"errors"
	"sort"

	"asa/interpreter-go/pkg/ast"
)

// ErrStackUnderflow is returned when a frame is requested from an empty stack.
var ErrStackUnderflow = errors.New("Frame stack underflow")

// Frame holds the bindings of one function activation.
type Frame struct {
	values map[string]Value
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]Value)}
}

// Define inserts a binding, replacing any existing one with the same name.
func (f *Frame) Define(name string, value Value) {
	f.values[name] = value
}

// Get looks a name up in this frame only.
func (f *Frame) Get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

// FrameStack is the LIFO of activations. Only the top frame is visible to
// evaluation; there is no search through enclosing frames.
type FrameStack struct {
	frames []*Frame
}

func (s *FrameStack) Push(f *Frame) {
	s.frames = append(s.frames, f)
}

func (s *FrameStack) Pop() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrStackUnderflow
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top, nil
}

func (s *FrameStack) Top() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrStackUnderflow
	}
	return s.frames[len(s.frames)-1], nil
}

func (s *FrameStack) Depth() int {
	return len(s.frames)
}

// FunctionTable maps function names to their bodies. A body starts with the
// FunctionArguments node when the function declares parameters.
type FunctionTable struct {
	bodies map[string][]ast.Node
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{bodies: make(map[string][]ast.Node)}
}

// Define registers body under name. The last definition wins.
func (t *FunctionTable) Define(name string, body []ast.Node) {
	t.bodies[name] = body
}

func (t *FunctionTable) Lookup(name string) ([]ast.Node, bool) {
	body, ok := t.bodies[name]
	return body, ok
}

// Names returns the defined function names in sorted order.
func (t *FunctionTable) Names() []string {
	names := make([]string, 0, len(t.bodies))
	for name := range t.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
