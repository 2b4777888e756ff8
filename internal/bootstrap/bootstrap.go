// Package bootstrap wires the startup pipeline: resolve variables,
// render the configuration template, install the result, and hand the
// process to the server. Every step is fail-fast; nothing is written
// until the rendered output has parsed and validated.
package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/errors"
	"github.com/ksyq12/wsgate/internal/launcher"
	"github.com/ksyq12/wsgate/internal/template"
)

// Options control one bootstrap run.
type Options struct {
	// TemplatePath is the configuration template to render. Empty
	// means the compiled-in default path.
	TemplatePath string

	// OutputPath is where the rendered configuration is installed.
	OutputPath string

	// ServerCmd overrides the handoff command. Empty re-executes this
	// binary in serve mode against the installed configuration.
	ServerCmd string

	// Supervise keeps the entrypoint alive as a signal-forwarding
	// parent instead of replacing the process.
	Supervise bool

	// DryRun stops after validation, with no write and no handoff.
	DryRun bool
}

func (o Options) withDefaults() Options {
	if o.TemplatePath == "" {
		o.TemplatePath = config.DefaultTemplatePath
	}
	if o.OutputPath == "" {
		o.OutputPath = config.DefaultOutputPath
	}
	return o
}

// Result carries the outcome of the render pipeline.
type Result struct {
	// Rendered is the final configuration text.
	Rendered string

	// Config is the rendered configuration, parsed and validated.
	Config *config.Config

	// Vars maps each placeholder to the value substituted for it.
	Vars map[string]string
}

// Render runs the pipeline up to validation. It performs no writes, so
// a failure leaves any previously installed configuration untouched.
func Render(opts Options) (*Result, error) {
	opts = opts.withDefaults()

	text, err := template.Load(opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	names, err := template.Placeholders(text)
	if err != nil {
		return nil, err
	}

	values, missing := config.ResolveVars(names)
	if len(missing) > 0 {
		return nil, errors.Unresolved(missing)
	}

	rendered, err := template.Render(text, values)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Parse([]byte(rendered))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Result{Rendered: rendered, Config: cfg, Vars: values}, nil
}

// Run executes the full pipeline: render, install, hand off. In exec
// mode a successful handoff never returns; supervise mode returns the
// server's exit code.
func Run(opts Options, l *launcher.Launcher, log *logrus.Logger) (int, error) {
	opts = opts.withDefaults()
	if log == nil {
		log = logrus.StandardLogger()
	}

	res, err := Render(opts)
	if err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{
		"template": opts.TemplatePath,
		"listen":   res.Config.ListenAddr(),
		"upstream": res.Config.UpstreamAddr(),
	}).Debug("configuration rendered")

	if opts.DryRun {
		log.Info("dry run: skipping install and handoff")
		return 0, nil
	}

	if err := template.Install(opts.OutputPath, []byte(res.Rendered), 0o644); err != nil {
		return 0, err
	}
	log.WithField("path", opts.OutputPath).Debug("configuration installed")

	argv, err := launcher.ServerCommand(opts.ServerCmd, opts.OutputPath)
	if err != nil {
		return 0, err
	}

	if opts.Supervise {
		return l.Supervise(argv)
	}
	return 0, l.Replace(argv)
}
