package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ormwire/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile a configuration file and print the service graph as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Compile(cmd.Context(), configFile(args), compileOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Recompile the service graph whenever a configuration file changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), configFile(args), compileOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	return cmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the compiled graph cache")
	cmd.Flags().String("cache-dir", "", "Directory of the compiled graph cache (default .ormwire/cache)")
	cmd.Flags().Bool("trace", false, "Print the duration of every compilation phase to stderr")
}

func compileOptions(cmd *cobra.Command) app.CompileOptions {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	trace, _ := cmd.Flags().GetBool("trace")
	return app.CompileOptions{
		NoCache:  noCache,
		Trace:    trace,
		CacheDir: cacheDir,
	}
}
