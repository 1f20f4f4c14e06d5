// Package commands implements the CLI commands for fftwlink.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fftwlink/internal/app"
	"go.trai.ch/fftwlink/internal/build"
)

// CLI represents the command line interface for fftwlink.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	logFormat  string
	verbose    bool
}

// Application represents the application logic interface.
type Application interface {
	SetLogFormat(flag string) error
	SetVerbose(enable bool)
	Emit(ctx context.Context, opts app.EmitOptions) error
	Status(o app.Overrides) error
	Clean(options app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "fftwlink",
		Short:         "Provision the FFTW libraries and emit link directives",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			c.app.SetVerbose(c.verbose)
			return c.app.SetLogFormat(c.logFormat)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to the configuration file (default <manifest dir>/fftwlink.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "auto", "Log format: auto, pretty, plain or json")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log debug messages such as step timings")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newEmitCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
