package cli

import (
	"github.com/spf13/cobra"

	tocio "github.com/matzehuels/tocview/pkg/io"
)

// pushCommand creates the push command.
func (c *CLI) pushCommand() *cobra.Command {
	var name string
	var remove bool

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Store a diagram in the configured diagram store",
		Long: `Validate a diagram file and store it in the diagram store that serve
reads from. The diagram is named after the file unless --name is given.

With --delete the named diagram is removed instead and no file is read.`,
		Example: `  tocview push diagram.yaml --name programme-2025
  tocview push --delete --name programme-2025`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 && (!remove || name == "") {
				return cmd.Usage()
			}
			if name == "" {
				name = diagramName(args[0])
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if remove {
				if err := st.Delete(ctx, name); err != nil {
					return err
				}
				printSuccess("Deleted %s", name)
				return nil
			}

			d, err := tocio.ImportData(args[0])
			if err != nil {
				return err
			}
			g, err := tocio.Build(d)
			if err != nil {
				return err
			}
			if err := withSpinner(ctx, "Storing "+name, func() error { return st.Put(ctx, name, d) }); err != nil {
				return err
			}
			printSuccess("Stored %s", name)
			printDetail("%d nodes, %d connections, in %s", g.NodeCount(), g.EdgeCount(), c.storeDescription())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "diagram name (default: file name without extension)")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the named diagram")
	return cmd
}
