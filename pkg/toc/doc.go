// Package toc models a "theory of change" diagram and resolves which of its
// nodes are causally connected.
//
// # Overview
//
// A diagram is a list of columns ordered left to right, each holding nodes.
// Columns are causal stages: approaches on the left, outcomes on the right.
// A node lists the IDs it leads to in [Node.ConnectionIDs]; there is no
// explicit edge direction, so direction is inferred from column position.
//
// Build an indexed [Graph] with [New]:
//
//	g, err := toc.New(toc.Data{Columns: []toc.Column{
//	    {Title: "Approaches", Nodes: []toc.Node{{ID: "a", ConnectionIDs: []string{"b"}}}},
//	    {Title: "Outcomes", Nodes: []toc.Node{{ID: "b"}}},
//	}})
//
// # Connected Set
//
// [ResolveConnectedSet] takes the highlighted ("seed") node IDs and returns
// every node on a causal chain through them. For each seed it runs two
// searches:
//
//   - forward, following connections into columns at or after the seed's column
//   - backward, following the reverse index into columns at or before it
//
// The bound is the seed's own column for the whole search. An edge that
// points back into an earlier column is therefore invisible to the forward
// search that would otherwise follow it, which keeps malformed data from
// lighting up unrelated parts of the diagram.
//
// # Neighbours
//
// [ResolveImmediateNeighbors] answers the hover preview: the focused node,
// its direct successors and its direct predecessors. It is independent of
// the seed set and of column order.
//
// # Malformed Input
//
// Unknown seed or focus IDs are ignored. Connection IDs that do not resolve
// are dropped and reported by [Graph.Dangling]. Self references never loop
// because every search keeps a visited set. Only empty and duplicate node
// IDs are rejected, by [New].
//
// # Concurrency
//
// A Graph is immutable after [New] and all functions in this package are
// pure, so a Graph can be shared freely between goroutines.
package toc
