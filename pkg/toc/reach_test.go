package toc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func assertSet(t *testing.T, name string, got Set, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	if diff := cmp.Diff(NewSet(want...).Sorted(), got.Sorted()); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

func TestResolveConnectedSetEmptySeeds(t *testing.T) {
	for _, g := range []*Graph{chain(t), mustGraph(t, Data{}), nil} {
		assertSet(t, "empty seeds", ResolveConnectedSet(g, Set{}))
		assertSet(t, "nil seeds", ResolveConnectedSet(g, nil))
	}
}

func TestResolveConnectedSetIsolated(t *testing.T) {
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{{ID: "a", ConnectionIDs: []string{"b"}}, {ID: "lonely"}}},
		{Nodes: []Node{{ID: "b"}}},
	}})
	assertSet(t, "isolated", ResolveConnectedSet(g, NewSet("lonely")), "lonely")
}

func TestResolveConnectedSetDirectionality(t *testing.T) {
	g := chain(t)

	assertSet(t, "seed b", ResolveConnectedSet(g, NewSet("b")), "a", "b", "c")
	assertSet(t, "seed a", ResolveConnectedSet(g, NewSet("a")), "a", "b", "c")
	assertSet(t, "a forward", ResolveChain(g, "a", Forward), "a", "b", "c")
	assertSet(t, "a backward", ResolveChain(g, "a", Backward), "a")
	assertSet(t, "c forward", ResolveChain(g, "c", Forward), "c")
	assertSet(t, "c backward", ResolveChain(g, "c", Backward), "a", "b", "c")
}

func TestResolveConnectedSetNoSpuriousBranches(t *testing.T) {
	// d sits in the last column but only x leads to it. Neither the forward
	// chain from a nor the backward chain from c may pick it up.
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{
			{ID: "a", ConnectionIDs: []string{"b"}},
			{ID: "x", ConnectionIDs: []string{"d"}},
		}},
		{Nodes: []Node{{ID: "b", ConnectionIDs: []string{"c"}}}},
		{Nodes: []Node{{ID: "c"}, {ID: "d"}}},
	}})

	assertSet(t, "seed a", ResolveConnectedSet(g, NewSet("a")), "a", "b", "c")
	assertSet(t, "seed c", ResolveConnectedSet(g, NewSet("c")), "a", "b", "c")
	assertSet(t, "seed d", ResolveConnectedSet(g, NewSet("d")), "d", "x")
	assertSet(t, "seeds a,d", ResolveConnectedSet(g, NewSet("a", "d")), "a", "b", "c", "d", "x")
}

func TestResolveConnectedSetBackReference(t *testing.T) {
	// c in the last column points back at a in the first. The visited set
	// and the column bound must stop every search.
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{{ID: "a", ConnectionIDs: []string{"b"}}}},
		{Nodes: []Node{{ID: "b", ConnectionIDs: []string{"c"}}}},
		{Nodes: []Node{{ID: "c", ConnectionIDs: []string{"a"}}}},
	}})

	assertSet(t, "c forward", ResolveChain(g, "c", Forward), "c")
	assertSet(t, "b forward", ResolveChain(g, "b", Forward), "b", "c")
	assertSet(t, "a backward", ResolveChain(g, "a", Backward), "a")
	for _, seed := range []string{"a", "b", "c"} {
		assertSet(t, "seed "+seed, ResolveConnectedSet(g, NewSet(seed)), "a", "b", "c")
	}
}

func TestResolveConnectedSetSelfReference(t *testing.T) {
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{{ID: "a", ConnectionIDs: []string{"a", "b"}}}},
		{Nodes: []Node{{ID: "b", ConnectionIDs: []string{"b"}}}},
	}})
	assertSet(t, "seed a", ResolveConnectedSet(g, NewSet("a")), "a", "b")
	assertSet(t, "seed b", ResolveConnectedSet(g, NewSet("b")), "a", "b")
}

func TestResolveConnectedSetSeedColumnBound(t *testing.T) {
	// e sits in the seed's column and is reached through c in a later
	// column. The bound is the seed's column, so e is admitted going forward.
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{{ID: "a", ConnectionIDs: []string{"b"}}}},
		{Nodes: []Node{{ID: "b", ConnectionIDs: []string{"c"}}, {ID: "e"}}},
		{Nodes: []Node{{ID: "c", ConnectionIDs: []string{"e"}}}},
	}})

	assertSet(t, "b forward", ResolveChain(g, "b", Forward), "b", "c", "e")
	assertSet(t, "c forward", ResolveChain(g, "c", Forward), "c")
	// Backward from e: c is in a later column and is excluded.
	assertSet(t, "e backward", ResolveChain(g, "e", Backward), "e")
}

func TestResolveConnectedSetSameColumn(t *testing.T) {
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{
			{ID: "1", ConnectionIDs: []string{"2"}},
			{ID: "2", ConnectionIDs: []string{"7"}},
		}},
		{Nodes: []Node{{ID: "7"}}},
	}})
	assertSet(t, "seed 1", ResolveConnectedSet(g, NewSet("1")), "1", "2", "7")
	assertSet(t, "seed 2", ResolveConnectedSet(g, NewSet("2")), "1", "2", "7")
}

func TestResolveConnectedSetUnknownIDs(t *testing.T) {
	g := mustGraph(t, Data{Columns: []Column{
		{Nodes: []Node{{ID: "a", ConnectionIDs: []string{"ghost", "b"}}}},
		{Nodes: []Node{{ID: "b"}}},
	}})
	assertSet(t, "unknown seed", ResolveConnectedSet(g, NewSet("nope")))
	assertSet(t, "mixed seeds", ResolveConnectedSet(g, NewSet("nope", "a")), "a", "b")
	assertSet(t, "unknown chain", ResolveChain(g, "nope", Forward))
	assertSet(t, "nil graph chain", ResolveChain(nil, "a", Forward))
}

func TestResolveConnectedSetMonotonic(t *testing.T) {
	g := fruit(t)
	ids := g.NodeIDs()

	// Every subset A of the first eight nodes against A plus one more node.
	for mask := 0; mask < 1<<8; mask++ {
		seeds := Set{}
		for i := 0; i < 8; i++ {
			if mask&(1<<i) != 0 {
				seeds.Add(ids[i])
			}
		}
		base := ResolveConnectedSet(g, seeds)
		for _, extra := range ids {
			bigger := seeds.Clone()
			bigger.Add(extra)
			if got := ResolveConnectedSet(g, bigger); !base.SubsetOf(got) {
				t.Fatalf("R(%v) = %v is not a subset of R(%v) = %v", seeds.Sorted(), base.Sorted(), bigger.Sorted(), got.Sorted())
			}
		}
	}
}

func TestResolveConnectedSetIdempotent(t *testing.T) {
	g := fruit(t)
	seeds := NewSet("🍋", "🍓")
	first := ResolveConnectedSet(g, seeds)
	second := ResolveConnectedSet(g, seeds)
	if !first.Equal(second) {
		t.Errorf("recomputation drifted: %v vs %v", first.Sorted(), second.Sorted())
	}
	if !seeds.Equal(NewSet("🍋", "🍓")) {
		t.Error("ResolveConnectedSet must not modify the seed set")
	}
}

func TestResolveConnectedSetFruit(t *testing.T) {
	g := fruit(t)
	assertSet(t, "seed 🍇", ResolveConnectedSet(g, NewSet("🍇")),
		"🍎", "🍊", "🍇", "🍓", "🍍", "🥝")
	assertSet(t, "seed 🍑", ResolveConnectedSet(g, NewSet("🍑")), "🍑")
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Backward.String() != "backward" {
		t.Errorf("Direction strings = %q, %q", Forward, Backward)
	}
}

func fruit(t *testing.T) *Graph {
	t.Helper()
	return mustGraph(t, Data{Columns: []Column{
		{Title: "Column 1", Nodes: []Node{
			{ID: "🍎", ConnectionIDs: []string{"🍋", "🍇"}},
			{ID: "🍊", ConnectionIDs: []string{"🍇"}},
		}},
		{Title: "Column 2", Nodes: []Node{
			{ID: "🍋", ConnectionIDs: []string{"🍉", "🍓"}},
			{ID: "🍇", ConnectionIDs: []string{"🍓"}},
			{ID: "🍐", ConnectionIDs: []string{"🍉"}},
		}},
		{Title: "Column 3", Nodes: []Node{
			{ID: "🍉", ConnectionIDs: []string{"🍍"}},
			{ID: "🍓", ConnectionIDs: []string{"🍍", "🥝"}},
		}},
		{Title: "Column 4", Nodes: []Node{{ID: "🍍"}, {ID: "🥝"}, {ID: "🍑"}}},
	}})
}
