package cli

import (
	"os"

	"github.com/ksyq12/wsgate/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wsgate",
	Short: "Config-templating gateway for WSGI application containers",
	Long: `wsgate is the entrypoint for proxy containers that sit in front of
WSGI application servers.

On startup it renders its configuration template from environment
variables, installs the result atomically, and hands the process over
to serve mode: a listener that serves static files from the shared
mount and forwards everything else to the application server over the
uwsgi binary protocol.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
