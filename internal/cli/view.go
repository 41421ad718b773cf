package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// viewCommand creates the interactive explorer command.
func (c *CLI) viewCommand() *cobra.Command {
	var seeds []string
	var title string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a diagram interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if title == "" {
				title = c.config.Render.Title
			}

			model := NewExplorerModel(g, title, splitIDs(seeds))
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			if m, ok := final.(ExplorerModel); ok && m.State.HasSeeds() {
				pinned := m.State.Seeds.Sorted()
				printInfo("Pinned: %s", strings.Join(pinned, ", "))
				printNextStep("Render this view", "tocview render "+args[0]+" --seed "+strings.Join(pinned, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&seeds, "seed", "s", nil, "pin node(s) at start (repeatable)")
	cmd.Flags().StringVar(&title, "title", "", "title shown above the diagram")
	return cmd
}
