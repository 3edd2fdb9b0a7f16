package commands

import "github.com/spf13/cobra"

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <service-id>",
		Short: "Describe one service of the compiled graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return c.app.Show(cmd.Context(), file, args[0])
		},
	}
	cmd.Flags().StringP("file", "f", DefaultConfigFile, "Configuration file to compile")
	return cmd
}
