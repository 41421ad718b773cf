package cli

import (
	"github.com/spf13/cobra"

	tocio "github.com/matzehuels/tocview/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a diagram between JSON, YAML and TOML",
		Long: `Convert a diagram between JSON, YAML and TOML. Formats are taken from the
file extensions (.json, .yaml, .yml, .toml). The diagram is validated
before it is written.`,
		Example: `  tocview convert diagram.json diagram.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if _, err := tocio.FormatFromPath(out); err != nil {
				return err
			}

			d, err := tocio.ImportData(in)
			if err != nil {
				return err
			}
			if _, err := tocio.Build(d); err != nil {
				return err
			}
			if err := tocio.Export(d, out); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debugf("Converted %s to %s", in, out)
			printSuccess("Converted %s", in)
			printFile(out)
			return nil
		},
	}
}
