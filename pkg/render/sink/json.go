package sink

import (
	"encoding/json"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
	"github.com/matzehuels/tocview/pkg/toc"
)

type jsonOutput struct {
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Columns []jsonColumn `json:"columns"`
	Nodes   []jsonNode   `json:"nodes"`
	Edges   []jsonEdge   `json:"edges"`
}

type jsonColumn struct {
	Index int     `json:"index"`
	Title string  `json:"title"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

type jsonNode struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Column   int     `json:"column"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Class    string  `json:"class"`
	Expanded bool    `json:"expanded,omitempty"`
}

type jsonEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Path  string `json:"path"`
	Class string `json:"class"`
}

// RenderJSON exports the geometry of l together with the CSS class of every
// node and connector under snap. Pass the zero Snapshot for default styling.
//
// The output is deterministic: nodes in column order, edges in declaration
// order. Self-referencing connections are omitted, as in [RenderSVG].
func RenderJSON(l layout.Layout, g *toc.Graph, snap highlight.Snapshot) ([]byte, error) {
	out := jsonOutput{
		Width:   l.FrameWidth,
		Height:  l.FrameHeight,
		Columns: make([]jsonColumn, 0, len(l.Headers)),
		Nodes:   []jsonNode{},
		Edges:   []jsonEdge{},
	}
	for _, h := range l.Headers {
		out.Columns = append(out.Columns, jsonColumn{
			Index: h.Column,
			Title: h.Title,
			X:     h.Left,
			Width: h.Right - h.Left,
			Color: HeaderColor(h.Column, len(l.Headers)),
		})
	}

	if g != nil {
		for _, id := range g.NodeIDs() {
			b, ok := l.Boxes[id]
			if !ok {
				continue
			}
			n, _ := g.Node(id)
			out.Nodes = append(out.Nodes, jsonNode{
				ID:       id,
				Title:    n.Title,
				Column:   b.Column,
				X:        b.Left,
				Y:        b.Top,
				Width:    b.Width(),
				Height:   b.Height(),
				Class:    snap.NodeStyle(id).Class(),
				Expanded: len(b.Detail) > 0,
			})
		}
		for _, e := range g.Edges() {
			if e.SelfLoop() {
				continue
			}
			c, ok := l.Connector(e.From, e.To)
			if !ok {
				continue
			}
			out.Edges = append(out.Edges, jsonEdge{
				From:  e.From,
				To:    e.To,
				Path:  c.Path(),
				Class: snap.EdgeStyle(e.From, e.To).Class(),
			})
		}
	}

	return json.MarshalIndent(out, "", "  ")
}
