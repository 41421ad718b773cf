// Package layout computes diagram geometry: column bands, node boxes and
// the curves between them.
//
// A [Layout] is a presentation-owned snapshot. It is derived from a graph
// and a set of expanded nodes and never feeds back into connection
// resolution; the same graph can be laid out many times with different
// options.
package layout

import (
	"math"

	"github.com/matzehuels/tocview/pkg/toc"
)

// Options controls the geometry. Zero fields fall back to
// [DefaultOptions].
type Options struct {
	ColumnWidth  float64
	ColumnGap    float64 // Horizontal space between columns
	Margin       float64 // Space around the whole drawing
	HeaderHeight float64 // Band reserved for column titles
	NodeGap      float64 // Minimum vertical space between nodes
	Padding      float64 // Inner padding of a node box
	LineHeight   float64
	CharWidth    float64 // Average glyph width used for wrapping
	Expanded     toc.Set // Nodes whose detail text is shown
}

// DefaultOptions returns the standard geometry: 240px columns separated by
// 64px, 14px text.
func DefaultOptions() Options {
	return Options{
		ColumnWidth:  240,
		ColumnGap:    64,
		Margin:       24,
		HeaderHeight: 44,
		NodeGap:      8,
		Padding:      10,
		LineHeight:   18,
		CharWidth:    7.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ColumnWidth <= 0 {
		o.ColumnWidth = d.ColumnWidth
	}
	if o.ColumnGap <= 0 {
		o.ColumnGap = d.ColumnGap
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = d.HeaderHeight
	}
	if o.NodeGap <= 0 {
		o.NodeGap = d.NodeGap
	}
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.LineHeight <= 0 {
		o.LineHeight = d.LineHeight
	}
	if o.CharWidth <= 0 {
		o.CharWidth = d.CharWidth
	}
	return o
}

// Layout is the computed geometry of a diagram.
type Layout struct {
	FrameWidth, FrameHeight float64
	Headers                 []Header
	Boxes                   map[string]Box
	Options                 Options
}

// Build lays out g. Columns are equal-width bands from left to right; nodes
// in a column are stacked top to bottom in input order with the leftover
// space spread evenly around them, so every column spans the same height.
func Build(g *toc.Graph, opts Options) Layout {
	opts = opts.withDefaults()
	l := Layout{Boxes: make(map[string]Box), Options: opts}
	if g == nil {
		return l
	}

	cols := g.Columns()
	textWidth := opts.ColumnWidth - 2*opts.Padding
	maxChars := max(1, int(textWidth/opts.CharWidth))

	heights := make([][]float64, len(cols))
	var contentHeight float64
	for ci, col := range cols {
		heights[ci] = make([]float64, len(col.Nodes))
		total := opts.NodeGap * float64(len(col.Nodes)+1)
		for ri, n := range col.Nodes {
			lines := Wrap(n.Title, maxChars)
			h := 2*opts.Padding + float64(max(1, len(lines)))*opts.LineHeight
			if n.HasDetail() && opts.Expanded.Has(n.ID) {
				h += opts.Padding + float64(len(Wrap(n.Text, maxChars)))*opts.LineHeight
			}
			heights[ci][ri] = h
			total += h
		}
		contentHeight = math.Max(contentHeight, total)
	}

	top := opts.Margin + opts.HeaderHeight
	for ci, col := range cols {
		left := opts.Margin + float64(ci)*(opts.ColumnWidth+opts.ColumnGap)
		right := left + opts.ColumnWidth
		l.Headers = append(l.Headers, Header{
			Column:   ci,
			Title:    col.Title,
			Left:     left,
			Right:    right,
			Baseline: opts.Margin + opts.HeaderHeight/2,
		})

		var used float64
		for _, h := range heights[ci] {
			used += h
		}
		gap := (contentHeight - used) / float64(len(col.Nodes)+1)

		y := top + gap
		for ri, n := range col.Nodes {
			b := Box{
				NodeID: n.ID,
				Column: ci, Row: ri,
				Left: left, Right: right,
				Top: y, Bottom: y + heights[ci][ri],
				Lines: Wrap(n.Title, maxChars),
			}
			if n.HasDetail() && opts.Expanded.Has(n.ID) {
				b.Detail = Wrap(n.Text, maxChars)
			}
			l.Boxes[n.ID] = b
			y = b.Bottom + gap
		}
	}

	n := float64(len(cols))
	l.FrameWidth = 2*opts.Margin + n*opts.ColumnWidth + math.Max(0, n-1)*opts.ColumnGap
	l.FrameHeight = 2*opts.Margin + opts.HeaderHeight + contentHeight
	return l
}
