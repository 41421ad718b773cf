package toc

// Direction selects which way a search follows connections.
type Direction int

const (
	// Forward follows declared connections (downstream, toward outcomes).
	Forward Direction = iota
	// Backward follows the reverse index (upstream, toward approaches).
	Backward
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// search holds the parameters of one directional traversal.
//
// The column bound is always the seed's column, not the column of the node
// currently being expanded: a forward search never enters a column before
// the one it started in, and a backward search never enters a later one.
type search struct {
	direction Direction
	origin    int
}

func (s search) admits(column int) bool {
	if s.direction == Forward {
		return column >= s.origin
	}
	return column <= s.origin
}

func (g *Graph) step(id string, d Direction) []string {
	if d == Forward {
		return g.outgoing[id]
	}
	return g.incoming[id]
}

// walk runs a depth-first search from seed with an explicit stack. Every
// node is pushed at most once, so self references and edges that loop back
// into earlier columns terminate.
func (g *Graph) walk(seed string, s search) Set {
	visited := NewSet(seed)
	stack := []string{seed}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.step(id, s.direction) {
			if visited.Has(next) {
				continue
			}
			if col := g.position[next].column; !s.admits(col) {
				continue
			}
			visited.Add(next)
			stack = append(stack, next)
		}
	}
	return visited
}

// ResolveChain returns seed plus every node reachable from it in direction
// d, bounded by the seed's column. Unknown seeds yield an empty set.
func ResolveChain(g *Graph, seed string, d Direction) Set {
	if g == nil {
		return Set{}
	}
	p, ok := g.position[seed]
	if !ok {
		return Set{}
	}
	return g.walk(seed, search{direction: d, origin: p.column})
}

// ResolveConnectedSet returns every node causally connected to at least one
// seed: the seed itself, its downstream chain through columns at or after
// the seed's column, and its upstream chain through columns at or before
// it. Results for multiple seeds are unioned.
//
// Seeds that do not exist are skipped. An empty seed set yields an empty
// result, never "everything". Each search costs O(V+E) thanks to the
// reverse adjacency index.
func ResolveConnectedSet(g *Graph, seeds Set) Set {
	out := Set{}
	if g == nil {
		return out
	}
	for id := range seeds {
		out.AddAll(ResolveChain(g, id, Forward))
		out.AddAll(ResolveChain(g, id, Backward))
	}
	return out
}
