package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/toc"
)

type resolveOpts struct {
	seeds     []string
	focus     string
	direction string // "", forward or backward
	json      bool
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Print the nodes connected to pinned nodes",
		Long: `Print the connected set for the pinned nodes (--seed) and the immediate
neighbourhood of the focused node (--focus), grouped by column.

With --direction only the downstream (forward) or upstream (backward) chain
of each seed is printed.`,
		Example: `  tocview resolve diagram.yaml --seed policy
  tocview resolve diagram.yaml --seed policy --direction backward --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.direction != "" && opts.direction != "forward" && opts.direction != "backward" {
				return fmt.Errorf("invalid direction: %s (must be 'forward' or 'backward')", opts.direction)
			}
			return runResolve(os.Stdout, g, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.seeds, "seed", "s", nil, "pin node(s) by ID (repeatable)")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "focused node ID")
	cmd.Flags().StringVar(&opts.direction, "direction", "", "only follow one direction: forward, backward")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")

	return cmd
}

type resolveResult struct {
	Seeds     []string `json:"seeds"`
	Focus     string   `json:"focus,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Connected []string `json:"connected"`
	Neighbors []string `json:"neighbors"`
}

func resolveSets(g *toc.Graph, opts resolveOpts) resolveResult {
	seeds := splitIDs(opts.seeds)
	st := highlight.NewState(seeds...)
	st.Hover(opts.focus)
	snap := highlight.Resolve(g, st)

	connected := snap.Connected
	if opts.direction != "" {
		d := toc.Forward
		if opts.direction == "backward" {
			d = toc.Backward
		}
		connected = toc.Set{}
		for id := range snap.Seeds {
			connected.AddAll(toc.ResolveChain(g, id, d))
		}
	}

	return resolveResult{
		Seeds:     snap.Seeds.Sorted(),
		Focus:     snap.Focus,
		Direction: opts.direction,
		Connected: connected.Sorted(),
		Neighbors: snap.Neighbors.Sorted(),
	}
}

func runResolve(w io.Writer, g *toc.Graph, opts resolveOpts) error {
	res := resolveSets(g, opts)
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	warnUnknown(g, res.Seeds)
	if len(res.Seeds) > 0 {
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Connected (%d)", len(res.Connected))))
		printByColumn(w, g, toc.NewSet(res.Connected...), toc.NewSet(res.Seeds...))
	}
	if res.Focus != "" {
		if len(res.Seeds) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Neighbours of %s (%d)", res.Focus, len(res.Neighbors))))
		printByColumn(w, g, toc.NewSet(res.Neighbors...), toc.NewSet(res.Focus))
	}
	if len(res.Seeds) == 0 && res.Focus == "" {
		fmt.Fprintln(w, StyleDim.Render("nothing pinned; pass --seed or --focus"))
	}
	return nil
}

// printByColumn lists the members of set in column order, marking the IDs in
// mark.
func printByColumn(w io.Writer, g *toc.Graph, set, mark toc.Set) {
	for i, col := range g.Columns() {
		var ids []string
		for _, n := range col.Nodes {
			if !set.Has(n.ID) {
				continue
			}
			label := n.ID
			if n.Title != "" && n.Title != n.ID {
				label += StyleDim.Render(" " + n.Title)
			}
			if mark.Has(n.ID) {
				label = StyleHighlight.Render(iconPinned+" ") + label
			} else {
				label = "  " + label
			}
			ids = append(ids, label)
		}
		if len(ids) == 0 {
			continue
		}
		title := col.Title
		if title == "" {
			title = fmt.Sprintf("Column %d", i+1)
		}
		fmt.Fprintln(w, "  "+StyleValue.Render(title))
		fmt.Fprintln(w, "    "+strings.Join(ids, "\n    "))
	}
}
