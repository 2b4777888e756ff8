package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/wsgate/internal/errors"
)

// Container paths fixed by the image contract.
const (
	// DefaultTemplatePath is where the image ships the config template.
	DefaultTemplatePath = "/etc/wsgate/config.yaml.tmpl"

	// DefaultOutputPath is where the rendered config is installed.
	DefaultOutputPath = "/etc/wsgate/config.yaml"
)

// Config is the rendered proxy configuration.
type Config struct {
	Listen   Listen   `yaml:"listen"`
	Upstream Upstream `yaml:"upstream"`
	Static   Static   `yaml:"static"`
	Client   Client   `yaml:"client"`
	Status   Status   `yaml:"status"`
}

// Listen configures the inbound HTTP listener.
type Listen struct {
	Port int `yaml:"port" validate:"required,min=1,max=65535"`
}

// Upstream configures the application server behind the gateway.
type Upstream struct {
	Host           string   `yaml:"host" validate:"required,hostname_rfc1123|ip"`
	Port           int      `yaml:"port" validate:"required,min=1,max=65535"`
	ConnectTimeout Duration `yaml:"connect_timeout" validate:"min=0"`
	ReadTimeout    Duration `yaml:"read_timeout" validate:"min=0"`
}

// Static configures local serving of collected assets.
type Static struct {
	Prefix string `yaml:"prefix" validate:"required,startswith=/"`
	Root   string `yaml:"root" validate:"required,startswith=/"`
}

// Client bounds what the proxy accepts from clients.
type Client struct {
	MaxBodySize Size `yaml:"max_body_size" validate:"min=0"`
}

// Status configures the optional status listener. Port 0 disables it.
type Status struct {
	Port int `yaml:"port" validate:"min=0,max=65535"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report yaml names in validation errors, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns a Config carrying the compiled-in defaults. These
// mirror the template variable defaults so that an all-defaults render
// and a zero-input Parse agree.
func Default() *Config {
	return &Config{
		Listen: Listen{Port: 8000},
		Upstream: Upstream{
			Host:           "app",
			Port:           9000,
			ConnectTimeout: Duration(10 * time.Second),
			ReadTimeout:    Duration(60 * time.Second),
		},
		Static: Static{
			Prefix: "/static",
			Root:   "/vol/static",
		},
		Client: Client{MaxBodySize: 10 << 20},
		Status: Status{Port: 0},
	}
}

// Parse decodes YAML config data over the defaults. Fields absent from
// the data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to parse config", err)
	}

	// Normalize paths so prefix matching has one canonical form.
	if cfg.Static.Prefix != "/" {
		cfg.Static.Prefix = strings.TrimRight(cfg.Static.Prefix, "/")
	}
	if cfg.Static.Root != "" {
		cfg.Static.Root = filepath.Clean(cfg.Static.Root)
	}

	return cfg, nil
}

// Load reads and parses the rendered config from disk. A missing file
// is an error: the proxy must not start without its configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapTarget(errors.ErrCodeConfig, path, err)
	}
	return Parse(data)
}

// Validate checks the configuration against its field constraints and
// cross-field rules. All violations are reported in one error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.Validation(strings.Join(msgs, "; "))
		}
		return errors.Wrap(errors.ErrCodeConfig, "validation failed", err)
	}

	if c.Static.Prefix == "/" {
		return errors.Validation("static.prefix must not be / (it would shadow the upstream)")
	}

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

// ListenAddr returns the bind address for the inbound listener.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Listen.Port)
}

// UpstreamAddr returns the upstream dial address.
func (c *Config) UpstreamAddr() string {
	return net.JoinHostPort(c.Upstream.Host, strconv.Itoa(c.Upstream.Port))
}

// StatusAddr returns the bind address for the status listener.
func (c *Config) StatusAddr() string {
	return ":" + strconv.Itoa(c.Status.Port)
}

// StatusEnabled reports whether the status listener should run.
func (c *Config) StatusEnabled() bool {
	return c.Status.Port > 0
}
