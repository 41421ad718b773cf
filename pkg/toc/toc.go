package toc

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [New] when a node has an empty ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [New] when the same ID appears more
	// than once, in the same column or across columns. Node IDs must be
	// unique across the whole diagram.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Node is a single box in a theory of change diagram.
//
// ConnectionIDs are forward references: "this node causally leads to these
// nodes". By convention they point at nodes in the same or a later column,
// but nothing enforces it.
type Node struct {
	ID            string
	Title         string
	Text          string // Optional detail body; empty means nothing to expand
	ConnectionIDs []string
}

// HasDetail reports whether the node carries an expandable detail text.
func (n Node) HasDetail() bool { return n.Text != "" }

// Column is an ordered stage bucket. Its position in [Data.Columns] is the
// only source of edge direction.
type Column struct {
	Title string
	Nodes []Node
}

// Data is the raw diagram input: columns ordered left to right.
type Data struct {
	Columns []Column
}

// Clone returns a deep copy of d.
func (d Data) Clone() Data {
	out := Data{Columns: make([]Column, len(d.Columns))}
	for i, col := range d.Columns {
		nodes := make([]Node, len(col.Nodes))
		for j, n := range col.Nodes {
			n.ConnectionIDs = slices.Clone(n.ConnectionIDs)
			nodes[j] = n
		}
		out.Columns[i] = Column{Title: col.Title, Nodes: nodes}
	}
	return out
}

// Edge is a resolved connection between two existing nodes.
type Edge struct {
	From, To             string
	FromColumn, ToColumn int
}

// Backward reports whether the edge points into an earlier column.
func (e Edge) Backward() bool { return e.ToColumn < e.FromColumn }

// SelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) SelfLoop() bool { return e.From == e.To }

// Reference is a connection ID that does not resolve to any node.
type Reference struct {
	From string // Node declaring the connection
	To   string // Unknown target ID
}

// Graph is the immutable, indexed form of a diagram.
//
// Lookups by ID, column membership and adjacency in both directions are
// answered from maps built once by [New]. A Graph is never mutated after
// construction and is safe for concurrent readers.
type Graph struct {
	data     Data
	position map[string]nodePos
	order    []string            // node IDs in column-then-row order
	outgoing map[string][]string // resolved, deduplicated successors
	incoming map[string][]string // reverse adjacency index
	edges    []Edge
	dangling []Reference
}

type nodePos struct {
	column, row int
}

// New indexes data into a Graph. The input is copied, so later changes to
// data do not affect the Graph.
//
// Returns ErrInvalidNodeID for an empty node ID and ErrDuplicateNodeID when
// an ID is reused. Connection IDs that do not resolve are dropped from the
// adjacency and reported by [Graph.Dangling]; they are not an error.
// Duplicate connection IDs on one node collapse into a single edge.
func New(data Data) (*Graph, error) {
	g := &Graph{
		data:     data.Clone(),
		position: make(map[string]nodePos),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}

	for ci, col := range g.data.Columns {
		for ri, n := range col.Nodes {
			if n.ID == "" {
				return nil, fmt.Errorf("column %d row %d: %w", ci, ri, ErrInvalidNodeID)
			}
			if _, exists := g.position[n.ID]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
			}
			g.position[n.ID] = nodePos{column: ci, row: ri}
			g.order = append(g.order, n.ID)
		}
	}

	for _, id := range g.order {
		from := g.position[id]
		n := g.data.Columns[from.column].Nodes[from.row]
		for _, target := range n.ConnectionIDs {
			to, ok := g.position[target]
			if !ok {
				g.dangling = append(g.dangling, Reference{From: id, To: target})
				continue
			}
			if slices.Contains(g.outgoing[id], target) {
				continue
			}
			g.outgoing[id] = append(g.outgoing[id], target)
			g.incoming[target] = append(g.incoming[target], id)
			g.edges = append(g.edges, Edge{
				From: id, To: target,
				FromColumn: from.column, ToColumn: to.column,
			})
		}
	}

	return g, nil
}

// Data returns a deep copy of the diagram the Graph was built from.
func (g *Graph) Data() Data { return g.data.Clone() }

// ColumnIndexOf returns the index of the column holding id.
func (g *Graph) ColumnIndexOf(id string) (int, bool) {
	p, ok := g.position[id]
	return p.column, ok
}

// Node returns the node with the given ID and true, or a zero Node and
// false if not found.
func (g *Graph) Node(id string) (Node, bool) {
	p, ok := g.position[id]
	if !ok {
		return Node{}, false
	}
	return g.data.Columns[p.column].Nodes[p.row], true
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.position[id]
	return ok
}

// Successors returns the IDs of existing nodes id connects to, in declared
// order. The slice is a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs of nodes whose connections include id, in
// column-then-row order. The slice is a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// SuccessorsOf returns the nodes id connects to. Unknown IDs yield nil.
func (g *Graph) SuccessorsOf(id string) []Node { return g.nodes(g.outgoing[id]) }

// PredecessorsOf returns every node whose ConnectionIDs includes id.
// It is answered from the reverse adjacency index, so it costs
// O(in-degree) rather than a scan of the whole diagram.
func (g *Graph) PredecessorsOf(id string) []Node { return g.nodes(g.incoming[id]) }

func (g *Graph) nodes(ids []string) []Node {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		n, _ := g.Node(id)
		out = append(out, n)
	}
	return out
}

// Columns returns a deep copy of the columns.
func (g *Graph) Columns() []Column { return g.Data().Columns }

// Column returns the column at index i.
func (g *Graph) Column(i int) (Column, bool) {
	if i < 0 || i >= len(g.data.Columns) {
		return Column{}, false
	}
	col := g.data.Columns[i]
	return Column{Title: col.Title, Nodes: slices.Clone(col.Nodes)}, true
}

// ColumnCount returns the number of columns, including empty ones.
func (g *Graph) ColumnCount() int { return len(g.data.Columns) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// NodeIDs returns all node IDs in column-then-row order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all resolved edges in declaration order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeCount returns the number of resolved edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dangling returns the connection IDs that did not resolve to a node.
func (g *Graph) Dangling() []Reference { return slices.Clone(g.dangling) }
