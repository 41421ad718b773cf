package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tocio "github.com/matzehuels/tocview/pkg/io"
	"github.com/matzehuels/tocview/pkg/pipeline"
	"github.com/matzehuels/tocview/pkg/toc"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // svg, dot, json, pdf, png
	seeds    []string // pinned node IDs
	focus    string   // hovered node ID
	expanded []string // nodes whose detail text is shown
	view     string   // columns or nodelink
	detailed bool     // node-link labels include detail text
	title    string   // SVG document title
	scale    float64  // PNG scale factor
	noCache  bool     // disable the render cache
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram with optional pinned nodes",
		Long: `Render a theory of change diagram to SVG, DOT, JSON, PDF or PNG.

Pinned nodes (--seed) highlight their causal chains: everything upstream in
earlier columns and everything downstream in later columns. Nodes outside
every chain are faded.`,
		Example: `  tocview render diagram.yaml --seed policy -o policy.svg
  tocview render diagram.json -f svg,png --view nodelink`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			c.applyRenderDefaults(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, pdf, png (comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.seeds, "seed", "s", nil, "pin node(s) by ID (repeatable)")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "hovered node ID")
	cmd.Flags().StringSliceVar(&opts.expanded, "expand", nil, "show detail text for node(s) (repeatable)")
	cmd.Flags().StringVar(&opts.view, "view", pipeline.ViewColumns, "view: columns, nodelink")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include detail text in node-link labels")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

// applyRenderDefaults fills flags the user left unset from the config file.
func (c *CLI) applyRenderDefaults(cmd *cobra.Command, opts *renderOpts) {
	rc := c.config.Render
	if !cmd.Flags().Changed("view") && rc.View != "" {
		opts.view = rc.View
	}
	if !cmd.Flags().Changed("title") && rc.Title != "" {
		opts.title = rc.Title
	}
	if !cmd.Flags().Changed("detailed") && rc.Detailed {
		opts.detailed = true
	}
	if !cmd.Flags().Changed("scale") && rc.Scale > 0 {
		opts.scale = rc.Scale
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var res *pipeline.Result
	err = withSpinner(ctx, "Rendering "+strings.Join(opts.formats, ", "), func() error {
		var err error
		res, err = runner.Execute(ctx, g, pipeline.Options{
			Name:     diagramName(input),
			Seeds:    splitIDs(opts.seeds),
			Focus:    opts.focus,
			View:     opts.view,
			Expanded: splitIDs(opts.expanded),
			Detailed: opts.detailed,
			Formats:  opts.formats,
			Title:    opts.title,
			Scale:    opts.scale,
			Refresh:  opts.refresh,
		})
		return err
	})
	if err != nil {
		return err
	}
	warnUnknown(g, splitIDs(opts.seeds))

	base := basePath(opts.output, input)
	var written []string
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	prog.done(fmt.Sprintf("Rendered %s", input))
	for _, p := range written {
		printFile(p)
	}
	printStats(res.Stats, res.CacheHit)
	printSelection(res.Snapshot, res.Stats.NodeCount)
	return nil
}

// loadGraph imports a diagram file and logs its dangling references.
func loadGraph(ctx context.Context, path string) (*toc.Graph, error) {
	logger := loggerFromContext(ctx)
	g, err := tocio.Import(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %s: %d columns, %d nodes, %d edges", path, g.ColumnCount(), g.NodeCount(), g.EdgeCount())
	for _, ref := range g.Dangling() {
		logger.Debug("dangling connection", "from", ref.From, "to", ref.To)
	}
	return g, nil
}

// warnUnknown prints a warning for pinned IDs that name no node. They are
// ignored by resolution, which makes typos easy to miss.
func warnUnknown(g *toc.Graph, ids []string) {
	for _, id := range ids {
		if !g.Has(id) {
			printWarning("unknown node %q ignored", id)
		}
	}
}

// diagramName derives a display name from a file path.
func diagramName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
