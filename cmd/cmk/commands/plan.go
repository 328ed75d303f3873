package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cmk/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [steps...]",
		Short: "Print the composed invocations without running them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.Plan(cmd.Context(), args, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("format", "f", app.FormatText, "Output format: text, json, or yaml")
	return cmd
}
