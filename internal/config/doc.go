// Package config defines the rendered proxy configuration and the
// substitution variables that produce it.
//
// The configuration lives at /etc/wsgate/config.yaml and is rendered
// once at container start from /etc/wsgate/config.yaml.tmpl. This
// package owns both halves of that contract: the variable resolution
// that feeds the template (environment values over compiled-in
// defaults) and the YAML model the rendered output must satisfy.
//
// # Configuration Structure
//
// Example config.yaml:
//
//	listen:
//	  port: 8000
//	upstream:
//	  host: app
//	  port: 9000
//	  connect_timeout: 10s
//	  read_timeout: 60s
//	static:
//	  prefix: /static
//	  root: /vol/static
//	client:
//	  max_body_size: 10m
//	status:
//	  port: 0
//
// Durations use Go syntax ("10s", "1m30s"). Sizes use nginx syntax
// ("10m", "512k", "1g", or a bare byte count). A status port of 0
// disables the status listener.
//
// # Variable Resolution
//
// ResolveVars maps placeholder names to substitution values. A name
// resolves from the process environment first; the recognized names
// (LISTEN_PORT, APP_HOST, APP_PORT, STATIC_PREFIX, STATIC_ROOT,
// MAX_BODY_SIZE, STATUS_PORT) fall back to compiled-in defaults when
// unset. An environment variable set to the empty string counts as
// unset. Names outside the recognized set resolve from the environment
// only, so deployments can extend the template without code changes.
//
// # Usage
//
// Loading and validating a rendered configuration:
//
//	cfg, err := config.Load("/etc/wsgate/config.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Config values are read-only after Load; share them freely across
// goroutines. ResolveVars reads the environment on every call.
package config
