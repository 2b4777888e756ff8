package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/errors"
	"github.com/ksyq12/wsgate/internal/output"
	"github.com/ksyq12/wsgate/internal/template"
)

var (
	templatePath    string
	templateBuiltin bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the configuration template",
	Long: `Print the configuration template that run and render would use: the
file at --template when it exists, the compiled-in default otherwise.

Useful as a starting point for a customized template:
  wsgate template --builtin > my-config.yaml.tmpl

Examples:
  wsgate template
  wsgate template --builtin`,
	Args: cobra.NoArgs,
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringVar(&templatePath, "template", config.DefaultTemplatePath, "Configuration template path")
	templateCmd.Flags().BoolVar(&templateBuiltin, "builtin", false, "Print the compiled-in default template")

	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if templateBuiltin {
		output.Print("%s", template.Builtin())
		return nil
	}

	text, err := template.Load(templatePath)
	if err != nil {
		if errors.Is(err, errors.ErrTemplateNotFound) {
			output.Print("%s", template.Builtin())
			return nil
		}
		return err
	}
	output.Print("%s", text)
	return nil
}
