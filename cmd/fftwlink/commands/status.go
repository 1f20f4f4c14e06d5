package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fftwlink/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	var o app.Overrides

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resolved target, expected artifacts and provision records",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			o.ConfigPath = c.configPath
			return c.app.Status(o)
		},
	}

	cmd.Flags().StringVarP(&o.Strategy, "strategy", "s", "", "Provisioning strategy: bundled, source or download")
	cmd.Flags().StringVarP(&o.Target, "target", "t", "", "Target as os/arch")

	return cmd
}
