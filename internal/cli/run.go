package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/bootstrap"
	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/launcher"
	"github.com/ksyq12/wsgate/internal/logger"
	"github.com/ksyq12/wsgate/internal/output"
)

var (
	runTemplatePath string
	runOutputPath   string
	runServerCmd    string
	runSupervise    bool
	runDryRun       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Render the configuration and hand off to the server",
	Long: `Render the configuration template from environment variables,
install the result, and hand the process over to the server command.

Recognized variables and their defaults:
  LISTEN_PORT    8000
  APP_HOST       app
  APP_PORT       9000
  STATIC_PREFIX  /static
  STATIC_ROOT    /vol/static
  MAX_BODY_SIZE  10m
  STATUS_PORT    0 (status listener disabled)

Any failure (unreadable template, unresolved placeholder, invalid
rendered configuration, failed write) aborts before the handoff and
leaves a previously installed configuration untouched.

The server command defaults to re-executing this binary in serve mode.
WSGATE_SERVER_CMD overrides it; WSGATE_SUPERVISE=1 keeps the
entrypoint alive as a signal-forwarding parent instead of exec.

Examples:
  wsgate run
  wsgate run --dry-run
  wsgate run --server-cmd "uwsgi --ini /app/uwsgi.ini" --supervise`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runTemplatePath, "template", config.DefaultTemplatePath, "Configuration template path")
	runCmd.Flags().StringVar(&runOutputPath, "output", config.DefaultOutputPath, "Rendered configuration path")
	runCmd.Flags().StringVar(&runServerCmd, "server-cmd", "", "Server command for the handoff (default: self in serve mode)")
	runCmd.Flags().BoolVar(&runSupervise, "supervise", false, "Run the server as a supervised child instead of exec")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Validate and print the rendered config without installing")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	opts := bootstrap.Options{
		TemplatePath: runTemplatePath,
		OutputPath:   runOutputPath,
		ServerCmd:    runServerCmd,
		Supervise:    runSupervise,
	}
	if opts.ServerCmd == "" {
		opts.ServerCmd = os.Getenv("WSGATE_SERVER_CMD")
	}
	if !cmd.Flags().Changed("supervise") {
		opts.Supervise = os.Getenv("WSGATE_SUPERVISE") == "1"
	}

	if runDryRun {
		res, err := bootstrap.Render(opts)
		if err != nil {
			return err
		}
		output.Print("%s", res.Rendered)
		output.Success("configuration valid, skipping install and handoff")
		return nil
	}

	code, err := bootstrap.Run(opts, launcher.NewWithExecer(deps.Execer, logger.L()), logger.L())
	if err != nil {
		return err
	}

	// Reached only in supervise mode or under test; exec replaces the
	// process before Run returns.
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
