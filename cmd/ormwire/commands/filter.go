package commands

import "github.com/spf13/cobra"

func (c *CLI) newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter <assets...>",
		Short: "Print the schema assets a connection keeps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			connection, _ := cmd.Flags().GetString("connection")
			return c.app.Filter(cmd.Context(), file, connection, args)
		},
	}
	cmd.Flags().StringP("file", "f", DefaultConfigFile, "Configuration file to compile")
	cmd.Flags().StringP("connection", "c", "", "Connection whose filters apply (default connection if empty)")
	return cmd
}
