// Package highlight holds the transient interaction state of a diagram view
// (pinned seeds and the hovered node) and derives per-node and per-edge
// emphasis from it.
//
// The state belongs to whichever presentation layer owns the view: the
// terminal explorer, the HTTP handlers or a one-shot render. It is passed
// by value into [Resolve], which recomputes everything from scratch:
//
//	var st highlight.State
//	st.Toggle("policy")
//	st.Hover("outcome")
//	snap := highlight.Resolve(g, st)
//	snap.NodeStyle("advocacy").Class() // "node"
package highlight

import (
	"github.com/matzehuels/tocview/pkg/toc"
)

// State is the interaction state of one diagram view. The zero value has
// nothing highlighted and nothing hovered.
type State struct {
	Seeds toc.Set // Pinned node IDs
	Focus string  // Hovered node ID, empty when nothing is hovered
}

// NewState returns a state with the given seeds pinned.
func NewState(seeds ...string) State {
	return State{Seeds: toc.NewSet(seeds...)}
}

// Toggle pins id if it is not pinned and unpins it otherwise. It reports
// whether id is pinned afterwards. Toggles on different IDs commute, and
// toggling twice restores the original state.
func (s *State) Toggle(id string) bool {
	if s.Seeds == nil {
		s.Seeds = toc.Set{}
	}
	if s.Seeds.Has(id) {
		s.Seeds.Remove(id)
		return false
	}
	s.Seeds.Add(id)
	return true
}

// Hover sets the focused node.
func (s *State) Hover(id string) { s.Focus = id }

// Leave clears the focused node.
func (s *State) Leave() { s.Focus = "" }

// Clear unpins every seed. The focus is kept.
func (s *State) Clear() { s.Seeds = toc.Set{} }

// Highlighted reports whether id is pinned.
func (s State) Highlighted(id string) bool { return s.Seeds.Has(id) }

// HasSeeds reports whether at least one node is pinned.
func (s State) HasSeeds() bool { return s.Seeds.Len() > 0 }

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	return State{Seeds: s.Seeds.Clone(), Focus: s.Focus}
}
