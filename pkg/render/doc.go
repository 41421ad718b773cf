// Package render provides output conversion shared by the diagram renderers.
//
// # Overview
//
// Diagrams are drawn in two ways:
//
//   - Column view (in [sink]): the stage columns with curved connectors
//   - Node-link view (in [nodelink]): a Graphviz diagram ranked by column
//
// Both produce SVG. The [ToPDF] and [ToPNG] functions convert any SVG to
// other formats using the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l, g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/tocview/pkg/render/sink
// [nodelink]: github.com/matzehuels/tocview/pkg/render/nodelink
package render
