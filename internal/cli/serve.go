package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/logger"
	"github.com/ksyq12/wsgate/internal/proxy"
	"github.com/ksyq12/wsgate/internal/status"
)

var (
	serveConfigPath string
	serveLogFormat  string
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve static files and forward requests to the application",
	Long: `Run the gateway server against an installed configuration.

Requests under the static prefix are served from the static root;
everything else is forwarded to the application server over the uwsgi
binary protocol and relayed back unmodified. When status.port is set,
/health and /metrics run on their own listener.

SIGINT and SIGTERM drain in-flight requests before exiting.

Examples:
  wsgate serve
  wsgate serve --config /etc/wsgate/config.yaml --log-format json`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", config.DefaultOutputPath, "Path to the rendered configuration")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveLogFormat == "json" {
		logger.UseJSON()
	}
	if !verbose {
		// Serving traffic logs requests, not just warnings.
		if err := logger.SetLevel("info"); err != nil {
			return err
		}
	}
	log := logger.L()

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := proxy.NewServer(cfg, log)
	errCh := make(chan error, 2)
	go func() { errCh <- srv.Start() }()

	var statusSrv *status.Server
	if cfg.StatusEnabled() {
		statusSrv = status.NewServer(cfg, log)
		go func() { errCh <- statusSrv.Start() }()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if statusSrv != nil {
		_ = statusSrv.Shutdown(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}
