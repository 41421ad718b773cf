package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Column title colours: first column red, last green, the rest indigo.
const (
	colorFirstColumn  = "#b91c1c"
	colorLastColumn   = "#15803d"
	colorMiddleColumn = "#4338ca"
)

// EdgeStrokeWidth is the connector stroke width in user units.
const EdgeStrokeWidth = 12

const diagramCSS = `
    .header { font: bold 18px sans-serif; }
    .node rect { fill: #ffffff; stroke: #d1d5db; stroke-width: 1; }
    .node.hovered rect { fill: #e0e7ff; }
    .node.highlighted rect { fill: #c7d2fe; }
    .node.faded { opacity: 0.3; }
    .node-title { font: 500 14px sans-serif; fill: #111827; }
    .node-text { font: 14px sans-serif; fill: #374151; }
    .expand { fill: #6b7280; }
    .edge { fill: none; stroke: #a5b4fc; stroke-opacity: 0.2; stroke-width: %dpx; }
    .edge.connected { stroke-opacity: 0.6; }
    .edge.highlighted { stroke-opacity: 1; }
    .edge.hovered { stroke: #c7d2fe; stroke-opacity: 1; }
    .edge.faded { opacity: 0.01; }
    a { cursor: pointer; }`

const hoverJS = `
    var edges = Array.prototype.slice.call(document.querySelectorAll('.edge'));
    function preview(id) {
      var near = {}; near[id] = true;
      edges.forEach(function (e) {
        if (e.dataset.from === id) near[e.dataset.to] = true;
        if (e.dataset.to === id) near[e.dataset.from] = true;
      });
      edges.forEach(function (e) {
        e.classList.toggle('hovered', !!(near[e.dataset.from] && near[e.dataset.to]));
      });
      document.querySelectorAll('.node').forEach(function (n) {
        n.classList.toggle('hovered', n.dataset.id === id && !n.classList.contains('highlighted'));
      });
    }
    document.querySelectorAll('.node').forEach(function (n) {
      n.addEventListener('mouseenter', function () { preview(n.dataset.id); });
      n.addEventListener('mouseleave', function () { preview(''); });
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	snap       highlight.Snapshot
	link       func(id string) string
	expandLink func(id string) string
	title      string
	hover      bool
}

// WithSnapshot applies the pinned and hovered styling of s.
func WithSnapshot(s highlight.Snapshot) SVGOption {
	return func(r *svgRenderer) { r.snap = s }
}

// WithLinks wraps each node in a link to fn(id). Empty URLs are skipped.
func WithLinks(fn func(id string) string) SVGOption {
	return func(r *svgRenderer) { r.link = fn }
}

// WithExpandLinks draws an expand control linking to fn(id) on every node
// that has detail text.
func WithExpandLinks(fn func(id string) string) SVGOption {
	return func(r *svgRenderer) { r.expandLink = fn }
}

func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }
func WithHoverScript() SVGOption       { return func(r *svgRenderer) { r.hover = true } }

// RenderSVG draws l as a standalone SVG document. g must be the graph l was
// built from; connectors come from its resolved edges.
func RenderSVG(l layout.Layout, g *toc.Graph, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.FrameWidth, l.FrameHeight, l.FrameWidth, l.FrameHeight)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>"+diagramCSS+"\n  </style>\n", EdgeStrokeWidth)

	renderHeaders(&buf, l)
	if g != nil {
		renderEdges(&buf, &r, l, g)
		renderNodes(&buf, &r, l, g)
	}
	if r.hover {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// HeaderColor returns the title colour of column i out of n.
func HeaderColor(i, n int) string {
	switch {
	case i == 0:
		return colorFirstColumn
	case i == n-1:
		return colorLastColumn
	default:
		return colorMiddleColumn
	}
}

func renderHeaders(buf *bytes.Buffer, l layout.Layout) {
	for _, h := range l.Headers {
		fmt.Fprintf(buf, `  <text class="header" x="%.1f" y="%.1f" fill="%s" dominant-baseline="middle">%s</text>`+"\n",
			h.Left, h.Baseline, HeaderColor(h.Column, len(l.Headers)), escapeXML(h.Title))
	}
}

func renderEdges(buf *bytes.Buffer, r *svgRenderer, l layout.Layout, g *toc.Graph) {
	for _, e := range g.Edges() {
		if e.SelfLoop() {
			continue
		}
		c, ok := l.Connector(e.From, e.To)
		if !ok {
			continue
		}
		fmt.Fprintf(buf, `  <path class="%s" data-from="%s" data-to="%s" d="%s"/>`+"\n",
			r.snap.EdgeStyle(e.From, e.To).Class(), escapeXML(e.From), escapeXML(e.To), c.Path())
	}
}

func renderNodes(buf *bytes.Buffer, r *svgRenderer, l layout.Layout, g *toc.Graph) {
	opts := l.Options
	for _, id := range g.NodeIDs() {
		b, ok := l.Boxes[id]
		if !ok {
			continue
		}
		n, _ := g.Node(id)

		fmt.Fprintf(buf, `  <g class="%s" data-id="%s">`+"\n", r.snap.NodeStyle(id).Class(), escapeXML(id))
		wrapLink(buf, r.linkFor(id), func() {
			fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8"/>`+"\n",
				b.Left, b.Top, b.Width(), b.Height())
			y := b.Top + opts.Padding + opts.LineHeight*0.75
			renderLines(buf, "node-title", b.Left+opts.Padding, y, opts.LineHeight, b.Lines)
			if len(b.Detail) > 0 {
				y += float64(len(b.Lines))*opts.LineHeight + opts.Padding
				renderLines(buf, "node-text", b.Left+opts.Padding, y, opts.LineHeight, b.Detail)
			}
		})
		if n.HasDetail() && r.expandLink != nil {
			renderExpand(buf, r.expandLink(id), b)
		}
		buf.WriteString("  </g>\n")
	}
}

func (r *svgRenderer) linkFor(id string) string {
	if r.link == nil {
		return ""
	}
	return r.link(id)
}

func renderLines(buf *bytes.Buffer, class string, x, y, lineHeight float64, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(buf, `    <text class="%s" x="%.1f" y="%.1f">`, class, x, y)
	for i, line := range lines {
		dy := lineHeight
		if i == 0 {
			dy = 0
		}
		fmt.Fprintf(buf, `<tspan x="%.1f" dy="%.1f">%s</tspan>`, x, dy, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// renderExpand draws a chevron in the right edge of b, pointing down when
// collapsed and up when expanded.
func renderExpand(buf *bytes.Buffer, url string, b layout.Box) {
	cx, cy := b.Right-10, b.CenterY()
	d := fmt.Sprintf("M %.1f %.1f L %.1f %.1f L %.1f %.1f Z", cx-4, cy-2, cx+4, cy-2, cx, cy+3)
	if len(b.Detail) > 0 {
		d = fmt.Sprintf("M %.1f %.1f L %.1f %.1f L %.1f %.1f Z", cx-4, cy+2, cx+4, cy+2, cx, cy-3)
	}
	wrapLink(buf, url, func() {
		fmt.Fprintf(buf, `    <path class="expand" d="%s"/>`+"\n", d)
	})
}

func wrapLink(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, "    <a href=\"%s\">\n", escapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("    </a>\n")
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
