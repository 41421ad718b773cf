// Package nodelink renders theory of change diagrams as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz. Each
// column becomes a rank, laid out left to right, and nodes keep their
// highlight colours. It is an alternative to the column view when the
// diagram has many cross-links and an automatic layout reads better.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, highlight.Resolve(g, st), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
