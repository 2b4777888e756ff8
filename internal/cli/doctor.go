package cli

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/bootstrap"
	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/output"
	"github.com/ksyq12/wsgate/internal/template"
)

var (
	doctorTemplatePath string
	doctorOutputPath   string
)

const upstreamProbeTimeout = 2 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the container setup and diagnose issues",
	Long: `Run diagnostic checks on the gateway setup.

Checks:
  - Template present and parseable
  - Every placeholder resolvable from the environment
  - Rendered configuration valid
  - Output directory writable
  - Static root mounted
  - Application server reachable
  - Server command override resolvable

Examples:
  wsgate doctor
  wsgate doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorTemplatePath, "template", config.DefaultTemplatePath, "Configuration template path")
	doctorCmd.Flags().StringVar(&doctorOutputPath, "output", config.DefaultOutputPath, "Rendered configuration path")

	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Template []CheckResult `json:"template"`
	Runtime  []CheckResult `json:"runtime"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := &DoctorReport{}

	var cfg *config.Config
	report.Template, cfg = checkTemplate(doctorTemplatePath)
	report.Runtime = checkRuntime(cfg, doctorOutputPath)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

// checkTemplate walks the render pipeline step by step so a broken
// setup reports the first failing stage, not just the final error.
func checkTemplate(path string) ([]CheckResult, *config.Config) {
	results := []CheckResult{}

	text, err := template.Load(path)
	if err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("template not readable at %s", path),
		})
		return results, nil
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("template found (%s)", path),
	})

	names, err := template.Placeholders(text)
	if err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("template does not parse: %v", err),
		})
		return results, nil
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("template parses (%d placeholders)", len(names)),
	})

	_, missing := config.ResolveVars(names)
	if len(missing) > 0 {
		results = append(results, CheckResult{
			Status:  "error",
			Message: "unresolved placeholders: " + strings.Join(missing, ", "),
		})
		return results, nil
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: "all placeholders resolve",
	})

	res, err := bootstrap.Render(bootstrap.Options{TemplatePath: path})
	if err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("rendered configuration invalid: %v", err),
		})
		return results, nil
	}
	results = append(results, CheckResult{
		Status: "success",
		Message: fmt.Sprintf("rendered configuration valid (listen %s, upstream %s)",
			res.Config.ListenAddr(), res.Config.UpstreamAddr()),
	})

	return results, res.Config
}

func checkRuntime(cfg *config.Config, outputPath string) []CheckResult {
	results := []CheckResult{}

	// Probe the output directory the same way the installer will.
	dir := filepath.Dir(outputPath)
	if f, err := os.CreateTemp(dir, ".doctor-*"); err == nil {
		f.Close()
		os.Remove(f.Name())
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("output directory writable (%s)", dir),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("output directory not writable (%s)", dir),
		})
	}

	if cfg == nil {
		return results
	}

	if info, err := os.Stat(cfg.Static.Root); err == nil && info.IsDir() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("static root exists (%s)", cfg.Static.Root),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: fmt.Sprintf("static root missing (%s), volume may be mounted at runtime", cfg.Static.Root),
		})
	}

	addr := cfg.UpstreamAddr()
	if conn, err := net.DialTimeout("tcp", addr, upstreamProbeTimeout); err == nil {
		conn.Close()
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("upstream reachable (%s)", addr),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: fmt.Sprintf("upstream not reachable (%s), application may not be up yet", addr),
		})
	}

	if serverCmd := os.Getenv("WSGATE_SERVER_CMD"); serverCmd != "" {
		argv, err := shellquote.Split(serverCmd)
		if err != nil || len(argv) == 0 {
			results = append(results, CheckResult{
				Status:  "error",
				Message: "WSGATE_SERVER_CMD does not parse",
			})
		} else if _, err := deps.Execer.LookPath(argv[0]); err != nil {
			results = append(results, CheckResult{
				Status:  "error",
				Message: fmt.Sprintf("server command %q not found in PATH", argv[0]),
			})
		} else {
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("server command resolves (%s)", argv[0]),
			})
		}
	} else {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "server command: built-in serve mode",
		})
	}

	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking template...")
	for _, check := range report.Template {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking runtime...")
	for _, check := range report.Runtime {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
