package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/output"
)

var checkConfigPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate an installed configuration",
	Long: `Parse and validate a rendered configuration file.

Exits non-zero if the file is missing, malformed, or fails validation.

Examples:
  wsgate check
  wsgate check --config /etc/wsgate/config.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", config.DefaultOutputPath, "Path to the rendered configuration")

	rootCmd.AddCommand(checkCmd)
}

// checkReport is the JSON shape of a check run
type checkReport struct {
	Path        string `json:"path"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
	Listen      string `json:"listen,omitempty"`
	Upstream    string `json:"upstream,omitempty"`
	Static      string `json:"static,omitempty"`
	MaxBodySize string `json:"max_body_size,omitempty"`
	Status      string `json:"status,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfigPath)
	if err == nil {
		err = cfg.Validate()
	}

	if jsonOutput {
		report := checkReport{Path: checkConfigPath, Valid: err == nil}
		if err != nil {
			report.Error = err.Error()
		} else {
			report.Listen = cfg.ListenAddr()
			report.Upstream = cfg.UpstreamAddr()
			report.Static = cfg.Static.Prefix + " -> " + cfg.Static.Root
			report.MaxBodySize = maxBodyValue(cfg)
			report.Status = statusValue(cfg)
		}
		if jerr := output.JSON(report); jerr != nil {
			return jerr
		}
		return err
	}

	if err != nil {
		return err
	}

	output.Success("%s is valid", checkConfigPath)

	headers := []string{"SETTING", "VALUE"}
	rows := [][]string{
		{"listen", cfg.ListenAddr()},
		{"upstream", cfg.UpstreamAddr()},
		{"static", cfg.Static.Prefix + " -> " + cfg.Static.Root},
		{"max body size", maxBodyValue(cfg)},
		{"status", statusValue(cfg)},
	}
	output.Table(headers, rows)
	return nil
}

func maxBodyValue(cfg *config.Config) string {
	if cfg.Client.MaxBodySize == 0 {
		return "unlimited"
	}
	return cfg.Client.MaxBodySize.String()
}

func statusValue(cfg *config.Config) string {
	if !cfg.StatusEnabled() {
		return "disabled"
	}
	return cfg.StatusAddr()
}
