package pipeline

import (
	"context"
	"net/url"
	"time"

	"github.com/matzehuels/tocview/pkg/observability"
	"github.com/matzehuels/tocview/pkg/render"
	"github.com/matzehuels/tocview/pkg/render/nodelink"
	"github.com/matzehuels/tocview/pkg/render/sink"
	"github.com/matzehuels/tocview/pkg/toc"
)

// renderFormats produces every requested format. PDF and PNG are converted
// from the SVG, which is rendered at most once.
func renderFormats(ctx context.Context, g *toc.Graph, res *Result, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	var svg []byte

	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, g, res, opts)
		return svg, err
	}

	for _, format := range opts.Formats {
		start := time.Now()
		observability.Render().OnRenderStart(ctx, format, g.NodeCount())

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, res.Snapshot, nodelink.Options{Detailed: opts.Detailed}))
		case FormatJSON:
			data, err = sink.RenderJSON(res.Layout, g, res.Snapshot)
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		}

		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

func renderSVG(ctx context.Context, g *toc.Graph, res *Result, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, res.Snapshot, nodelink.Options{Detailed: opts.Detailed}))
	}

	svgOpts := []sink.SVGOption{
		sink.WithSnapshot(res.Snapshot),
		sink.WithHoverScript(),
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.LinkBase != "" {
		svgOpts = append(svgOpts,
			sink.WithLinks(func(id string) string { return ToggleURL(opts.LinkBase, opts.Seeds, opts.Expanded, id) }),
			sink.WithExpandLinks(func(id string) string { return ExpandURL(opts.LinkBase, opts.Seeds, opts.Expanded, id) }),
		)
	}
	return sink.RenderSVG(res.Layout, g, svgOpts...), nil
}

// ToggleURL returns base with a query that pins the current seeds with id
// toggled, keeping the expanded nodes.
func ToggleURL(base string, seeds, expanded []string, id string) string {
	set := toc.NewSet(seeds...)
	if set.Has(id) {
		set.Remove(id)
	} else {
		set.Add(id)
	}
	return withQuery(base, set.Sorted(), toc.NewSet(expanded...).Sorted())
}

// ExpandURL returns base with a query that keeps the current seeds and
// toggles whether id is expanded.
func ExpandURL(base string, seeds, expanded []string, id string) string {
	set := toc.NewSet(expanded...)
	if set.Has(id) {
		set.Remove(id)
	} else {
		set.Add(id)
	}
	return withQuery(base, toc.NewSet(seeds...).Sorted(), set.Sorted())
}

func withQuery(base string, seeds, expanded []string) string {
	q := url.Values{}
	for _, s := range seeds {
		q.Add("seed", s)
	}
	for _, e := range expanded {
		q.Add("expand", e)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}
