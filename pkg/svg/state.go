package svg

import (
	"github.com/noutice/happy-color-poc/pkg/graphics"
)

// nodeState is the inherited state an element passes to its children.
// Only the accumulated transform flows down the tree; fills are read
// per element and do not inherit.
type nodeState struct {
	Transform graphics.Matrix
}

// stateStack tracks inherited state during document traversal. The
// walker pushes on element entry and pops on element exit, so the top
// of the stack always describes the element currently being visited.
type stateStack struct {
	states []nodeState
}

// newStateStack creates a stack holding the identity root state.
func newStateStack() *stateStack {
	return &stateStack{
		states: []nodeState{{Transform: graphics.Identity()}},
	}
}

// Current returns the topmost state.
func (s *stateStack) Current() nodeState {
	return s.states[len(s.states)-1]
}

// Push enters an element, composing its local transform onto the
// accumulated one. Element-local points pass through the local
// transform first, then the ancestors'.
func (s *stateStack) Push(local graphics.Matrix) {
	cur := s.Current()
	s.states = append(s.states, nodeState{
		Transform: local.Multiply(cur.Transform),
	})
}

// Pop leaves an element. The root state is never popped.
func (s *stateStack) Pop() {
	if len(s.states) > 1 {
		s.states = s.states[:len(s.states)-1]
	}
}

// Depth returns the current stack depth.
func (s *stateStack) Depth() int {
	return len(s.states)
}
