package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/render"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends each node's detail text to its label.
	Detailed bool
}

var nodeFill = map[highlight.NodeState]string{
	highlight.NodeDefault:     "white",
	highlight.NodeHovered:     "#e0e7ff",
	highlight.NodeHighlighted: "#c7d2fe",
}

// Edge colours carry an alpha channel matching the SVG sink opacities.
var edgeColor = map[highlight.EdgeEmphasis]string{
	highlight.EdgeDefault:     "#a5b4fc33",
	highlight.EdgeConnected:   "#a5b4fc99",
	highlight.EdgeHighlighted: "#a5b4fc",
	highlight.EdgeHovered:     "#c7d2fe",
}

// ToDOT converts a diagram to Graphviz DOT source laid out left to right.
// Every column becomes a cluster whose nodes share a rank, so the stages
// line up the way they do in the column view. Backward connections do not
// constrain ranking. Styling follows snap; pass the zero Snapshot for none.
func ToDOT(g *toc.Graph, snap highlight.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [penwidth=4, arrowhead=none];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	n := g.ColumnCount()
	for ci := 0; ci < n; ci++ {
		col, _ := g.Column(ci)
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", ci)
		fmt.Fprintf(&buf, "    label=%q;\n", col.Title)
		fmt.Fprintf(&buf, "    fontcolor=%q;\n", columnColor(ci, n))
		buf.WriteString("    style=invis;\n")
		buf.WriteString("    rank=same;\n")
		for _, node := range col.Nodes {
			fmt.Fprintf(&buf, "    %q [%s];\n", node.ID, strings.Join(nodeAttrs(node, snap.NodeStyle(node.ID), opts), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.SelfLoop() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(edgeAttrs(e, snap.EdgeStyle(e.From, e.To)), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func columnColor(i, n int) string {
	switch {
	case i == 0:
		return "#b91c1c"
	case i == n-1:
		return "#15803d"
	default:
		return "#4338ca"
	}
}

func nodeAttrs(n toc.Node, st highlight.NodeStyle, opts Options) []string {
	label := n.Title
	if label == "" {
		label = n.ID
	}
	if opts.Detailed && n.HasDetail() {
		label += "\n\n" + n.Text
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	fill := nodeFill[st.State]
	if st.Faded {
		fill = "#ffffff4d"
		attrs = append(attrs, `color="#d1d5db4d"`, `fontcolor="#1118274d"`)
	}
	if fill != "white" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return attrs
}

func edgeAttrs(e toc.Edge, st highlight.EdgeStyle) []string {
	color := edgeColor[st.Emphasis]
	if st.Faded {
		color = "#a5b4fc03"
	}
	attrs := []string{fmt.Sprintf("color=%q", color)}
	if e.Backward() || e.FromColumn == e.ToColumn {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the output scales like the column SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
