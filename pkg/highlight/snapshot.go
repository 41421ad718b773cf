package highlight

import (
	"github.com/matzehuels/tocview/pkg/toc"
)

// Snapshot holds the sets derived from a [State] for one graph. It is a
// plain value; nothing in it refers back to the State it came from.
type Snapshot struct {
	Seeds     toc.Set // Pinned IDs, copied from the state
	Focus     string  // Hovered ID, copied from the state
	Connected toc.Set // Result of toc.ResolveConnectedSet over Seeds
	Neighbors toc.Set // Result of toc.ResolveImmediateNeighbors over Focus
}

// Resolve derives a Snapshot from st. It is a pure function: calling it
// twice with the same inputs yields equal snapshots.
func Resolve(g *toc.Graph, st State) Snapshot {
	return Snapshot{
		Seeds:     st.Seeds.Clone(),
		Focus:     st.Focus,
		Connected: toc.ResolveConnectedSet(g, st.Seeds),
		Neighbors: toc.ResolveImmediateNeighbors(g, st.Focus),
	}
}

// NodeState is the fill emphasis of a node.
type NodeState int

const (
	NodeDefault NodeState = iota
	NodeHovered
	NodeHighlighted
)

// String returns the CSS-friendly name of the state.
func (s NodeState) String() string {
	switch s {
	case NodeHighlighted:
		return "highlighted"
	case NodeHovered:
		return "hovered"
	default:
		return "default"
	}
}

// NodeStyle is the visual state of one node.
type NodeStyle struct {
	State NodeState
	Faded bool // Something is pinned and this node is not connected to it
}

// Class returns space-separated CSS classes, always starting with "node".
func (n NodeStyle) Class() string {
	c := "node"
	if n.State != NodeDefault {
		c += " " + n.State.String()
	}
	if n.Faded {
		c += " faded"
	}
	return c
}

// NodeStyle returns the style of node id. A pinned node wins over a hovered
// one.
func (s Snapshot) NodeStyle(id string) NodeStyle {
	st := NodeStyle{State: NodeDefault}
	switch {
	case s.Seeds.Has(id):
		st.State = NodeHighlighted
	case s.Focus != "" && s.Focus == id:
		st.State = NodeHovered
	}
	st.Faded = s.Seeds.Len() > 0 && !s.Connected.Has(id)
	return st
}

// EdgeEmphasis is the stroke emphasis of a connector.
type EdgeEmphasis int

const (
	EdgeDefault     EdgeEmphasis = iota
	EdgeConnected                // Both ends in the connected set
	EdgeHighlighted              // One end is pinned
	EdgeHovered                  // Both ends in the hover neighbourhood
)

// String returns the CSS-friendly name of the emphasis.
func (e EdgeEmphasis) String() string {
	switch e {
	case EdgeHovered:
		return "hovered"
	case EdgeHighlighted:
		return "highlighted"
	case EdgeConnected:
		return "connected"
	default:
		return "default"
	}
}

// EdgeStyle is the visual state of one connector.
type EdgeStyle struct {
	Emphasis EdgeEmphasis
	Faded    bool // Something is pinned and not both ends are connected
}

// Class returns space-separated CSS classes, always starting with "edge".
func (e EdgeStyle) Class() string {
	c := "edge"
	if e.Emphasis != EdgeDefault {
		c += " " + e.Emphasis.String()
	}
	if e.Faded {
		c += " faded"
	}
	return c
}

// EdgeStyle returns the style of the connector from -> to.
//
// Stroke precedence is hovered, then highlighted, then connected. Fading is
// independent of stroke: a hovered edge between unconnected nodes is both
// hovered and faded.
func (s Snapshot) EdgeStyle(from, to string) EdgeStyle {
	bothConnected := s.Connected.Has(from) && s.Connected.Has(to)

	st := EdgeStyle{Emphasis: EdgeDefault}
	switch {
	case s.Neighbors.Has(from) && s.Neighbors.Has(to):
		st.Emphasis = EdgeHovered
	case s.Seeds.Has(from) || s.Seeds.Has(to):
		st.Emphasis = EdgeHighlighted
	case bothConnected:
		st.Emphasis = EdgeConnected
	}
	st.Faded = s.Seeds.Len() > 0 && !bothConnected
	return st
}
