package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/fftwlink/internal/adapters/render"
	"go.trai.ch/fftwlink/internal/app"
)

func (c *CLI) newEmitCmd() *cobra.Command {
	var opts app.EmitOptions

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Provision the libraries and print the link directives",
		Long: `Provision the FFTW libraries for the target and print the link directives.

Without --output the directives are written to stdout. With --output the file
is replaced atomically, and removed when the target links nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = c.configPath
			return c.app.Emit(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: "+strings.Join(render.Formats(), ", "))
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the directives to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", "", "Provisioning strategy: bundled, source or download")
	cmd.Flags().StringVarP(&opts.Target, "target", "t", "", "Target as os/arch (default: the host or GOOS/GOARCH)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Rebuild or re-extract artifacts even when they exist")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-emit when the inputs or the configuration change")

	return cmd
}
