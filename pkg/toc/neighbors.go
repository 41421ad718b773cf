package toc

// ResolveImmediateNeighbors returns the one-hop neighbourhood of focus: the
// node itself, the nodes it connects to and the nodes connecting to it.
// Column order plays no part here, and the result does not depend on any
// highlighted seeds.
//
// An empty focus means nothing is hovered and yields an empty set, as does
// a focus ID that is not in the graph.
func ResolveImmediateNeighbors(g *Graph, focus string) Set {
	out := Set{}
	if g == nil || focus == "" || !g.Has(focus) {
		return out
	}
	out.Add(focus)
	for _, id := range g.outgoing[focus] {
		out.Add(id)
	}
	for _, id := range g.incoming[focus] {
		out.Add(id)
	}
	return out
}
