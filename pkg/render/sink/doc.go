// Package sink turns a computed [layout.Layout] into output documents.
//
// # Overview
//
// A sink draws the same geometry in different encodings:
//
//   - SVG: the column diagram with curved connectors and highlight styling
//   - JSON: the geometry and per-element CSS classes for external front ends
//
// Both take the graph the layout was built from and, optionally, a
// [highlight.Snapshot] describing what is pinned and hovered.
//
// # SVG Output
//
//	l := layout.Build(g, layout.Options{})
//	svg := sink.RenderSVG(l, g,
//	    sink.WithSnapshot(highlight.Resolve(g, st)),
//	    sink.WithLinks(func(id string) string { return "?seed=" + id }),
//	)
//
// Without a snapshot every node and connector is drawn in its default
// style. With one, nodes and connectors carry the classes returned by
// [highlight.Snapshot.NodeStyle] and [highlight.Snapshot.EdgeStyle], and the
// embedded stylesheet maps those classes to colours and opacity.
//
// # SVG Options
//
//   - [WithSnapshot]: Apply pinned and hovered styling
//   - [WithLinks]: Wrap each node in a link, typically one that toggles it
//   - [WithExpandLinks]: Add an expand control to nodes with detail text
//   - [WithTitle]: Set the document title
//   - [WithHoverScript]: Embed a small script that previews neighbours on hover
//
// Self-referencing connections are never drawn.
//
// [layout.Layout]: github.com/matzehuels/tocview/pkg/layout.Layout
// [highlight.Snapshot]: github.com/matzehuels/tocview/pkg/highlight.Snapshot
package sink
