package grab

import "github.com/esimov/gesturecore/scene"

// Stack holds the single currently-installed grab per sequence key and
// implements the supersession contract (see the grab cancel contract
// decision in DESIGN.md): installing a new grab asks only the grab it
// directly replaces to Cancel(); if that returns false the replaced
// grab is reinstated once the new one is removed, rather than asking
// every earlier superseder in the chain again.
type Stack struct {
	installed map[scene.SequenceKey]Surface
	// reinstate holds the grab to fall back to if the current one's
	// predecessor asked to be reinstated (Cancel() returned false).
	reinstate map[scene.SequenceKey]Surface
}

// NewStack returns an empty grab stack.
func NewStack() *Stack {
	return &Stack{
		installed: make(map[scene.SequenceKey]Surface),
		reinstate: make(map[scene.SequenceKey]Surface),
	}
}

// Install makes s the active grab for key. If a grab is already
// installed, it is asked to cancel; a false answer schedules it for
// reinstatement once s is removed.
func (st *Stack) Install(key scene.SequenceKey, s Surface) {
	if prev, ok := st.installed[key]; ok {
		if !prev.Cancel() {
			st.reinstate[key] = prev
		} else {
			delete(st.reinstate, key)
		}
	}
	st.installed[key] = s
}

// Remove uninstalls the grab for key, reinstating the predecessor it
// superseded if that predecessor asked to be reinstated.
func (st *Stack) Remove(key scene.SequenceKey) {
	delete(st.installed, key)
	if prev, ok := st.reinstate[key]; ok {
		st.installed[key] = prev
		delete(st.reinstate, key)
	}
}

// Current returns the active grab for key, if any.
func (st *Stack) Current(key scene.SequenceKey) (Surface, bool) {
	s, ok := st.installed[key]
	return s, ok
}
