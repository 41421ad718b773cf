package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tocview/pkg/toc"
)

// Severity of a lint finding.
type severity int

const (
	sevInfo severity = iota
	sevWarning
)

// finding is one diagnostic reported by lint.
type finding struct {
	severity severity
	kind     string
	message  string
}

// lintCommand creates the lint command.
func (c *CLI) lintCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint [file]",
		Short: "Check a diagram for dangling and unusual connections",
		Long: `Check a diagram for connections that are accepted but probably unintended:

  dangling   a connection ID that names no node
  self       a node connected to itself
  backward   a connection into an earlier column
  empty      a column without nodes
  isolated   a node with no connections at all

Dangling, self and backward connections are warnings; with --strict any
warning makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			findings := lintGraph(g)
			warnings := 0
			for _, f := range findings {
				if f.severity == sevWarning {
					warnings++
					printWarning("%s: %s", f.kind, f.message)
				} else {
					printInfo("%s: %s", f.kind, f.message)
				}
			}

			if len(findings) == 0 {
				printSuccess("%s: %d nodes, %d connections, no issues", args[0], g.NodeCount(), g.EdgeCount())
				return nil
			}
			printDetail("%d warning(s), %d note(s)", warnings, len(findings)-warnings)
			if strict && warnings > 0 {
				return fmt.Errorf("lint: %d warning(s)", warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings")
	return cmd
}

// lintGraph returns findings in a stable order: per column, per node.
func lintGraph(g *toc.Graph) []finding {
	var out []finding

	for _, ref := range g.Dangling() {
		out = append(out, finding{sevWarning, "dangling", fmt.Sprintf("%s connects to unknown node %q", ref.From, ref.To)})
	}

	for _, e := range g.Edges() {
		switch {
		case e.SelfLoop():
			out = append(out, finding{sevWarning, "self", fmt.Sprintf("%s connects to itself", e.From)})
		case e.Backward():
			out = append(out, finding{sevWarning, "backward", fmt.Sprintf("%s (column %d) connects back to %s (column %d)",
				e.From, e.FromColumn+1, e.To, e.ToColumn+1)})
		}
	}

	for i, col := range g.Columns() {
		if len(col.Nodes) == 0 {
			out = append(out, finding{sevInfo, "empty", fmt.Sprintf("column %d %q has no nodes", i+1, col.Title)})
		}
	}

	for _, id := range g.NodeIDs() {
		if len(g.Successors(id)) == 0 && len(g.Predecessors(id)) == 0 {
			out = append(out, finding{sevInfo, "isolated", fmt.Sprintf("%s has no connections", id)})
		}
	}

	return out
}
