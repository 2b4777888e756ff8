package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/bootstrap"
	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/output"
	"github.com/ksyq12/wsgate/internal/template"
)

var (
	renderTemplatePath string
	renderOutputPath   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the configuration template without starting anything",
	Long: `Render the configuration template from environment variables and
write the validated result, without installing a server.

The output defaults to stdout. Writing to a file uses the same atomic
install as run: the file is either fully replaced or left untouched.

Examples:
  wsgate render
  wsgate render --output /etc/wsgate/config.yaml
  LISTEN_PORT=9090 wsgate render`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderTemplatePath, "template", config.DefaultTemplatePath, "Configuration template path")
	renderCmd.Flags().StringVarP(&renderOutputPath, "output", "o", "-", "Output path, - for stdout")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	res, err := bootstrap.Render(bootstrap.Options{TemplatePath: renderTemplatePath})
	if err != nil {
		return err
	}

	if renderOutputPath == "-" || renderOutputPath == "" {
		output.Print("%s", res.Rendered)
		return nil
	}

	if err := template.Install(renderOutputPath, []byte(res.Rendered), 0o644); err != nil {
		return err
	}
	output.Success("configuration written to %s", renderOutputPath)
	return nil
}
