package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fftwlink/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove downloaded archives, build output and provision records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, _ := cmd.Flags().GetBool("state")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{ConfigPath: c.configPath}

			switch {
			case all:
				opts.Output = true
				opts.State = true
			case state:
				opts.State = true
			default:
				opts.Output = true
			}

			return c.app.Clean(opts)
		},
	}

	cmd.Flags().Bool("state", false, "Remove the provision records instead of the output directory")
	cmd.Flags().BoolP("all", "a", false, "Remove the output directory and the provision records")

	return cmd
}
