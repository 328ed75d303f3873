package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cmk/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [steps...]",
		Short: "Run steps in declaration order",
		Long:  "Run the named steps in the order they are declared in cmk.yaml. With no steps, every step runs.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			tty, _ := cmd.Flags().GetBool("tty")
			jsonLogs, _ := cmd.Flags().GetBool("json")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Verbose: verbose,
				TTY:     tty,
				JSON:    jsonLogs,
			})
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log each composed command line before it runs")
	cmd.Flags().Bool("tty", false, "Run steps under a pseudo-terminal")
	cmd.Flags().Bool("json", false, "Write log records as JSON")
	return cmd
}
