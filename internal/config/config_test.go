package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ksyq12/wsgate/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Listen.Port != 8000 {
		t.Errorf("Listen.Port = %d, want 8000", cfg.Listen.Port)
	}
	if cfg.Upstream.Host != "app" {
		t.Errorf("Upstream.Host = %q, want %q", cfg.Upstream.Host, "app")
	}
	if cfg.Upstream.Port != 9000 {
		t.Errorf("Upstream.Port = %d, want 9000", cfg.Upstream.Port)
	}
	if cfg.Upstream.ConnectTimeout.Std() != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.Upstream.ConnectTimeout)
	}
	if cfg.Upstream.ReadTimeout.Std() != 60*time.Second {
		t.Errorf("ReadTimeout = %v, want 60s", cfg.Upstream.ReadTimeout)
	}
	if cfg.Static.Prefix != "/static" {
		t.Errorf("Static.Prefix = %q, want %q", cfg.Static.Prefix, "/static")
	}
	if cfg.Static.Root != "/vol/static" {
		t.Errorf("Static.Root = %q, want %q", cfg.Static.Root, "/vol/static")
	}
	if cfg.Client.MaxBodySize.Bytes() != 10<<20 {
		t.Errorf("MaxBodySize = %d, want %d", cfg.Client.MaxBodySize.Bytes(), 10<<20)
	}
	if cfg.StatusEnabled() {
		t.Error("status listener should be disabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		data := []byte(`
listen:
  port: 8080
upstream:
  host: backend.internal
  port: 3031
  connect_timeout: 5s
  read_timeout: 2m
static:
  prefix: /assets
  root: /srv/assets
client:
  max_body_size: 25m
status:
  port: 9901
`)
		cfg, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if cfg.Listen.Port != 8080 {
			t.Errorf("Listen.Port = %d, want 8080", cfg.Listen.Port)
		}
		if cfg.Upstream.Host != "backend.internal" {
			t.Errorf("Upstream.Host = %q, want backend.internal", cfg.Upstream.Host)
		}
		if cfg.Upstream.ReadTimeout.Std() != 2*time.Minute {
			t.Errorf("ReadTimeout = %v, want 2m", cfg.Upstream.ReadTimeout)
		}
		if cfg.Static.Prefix != "/assets" {
			t.Errorf("Static.Prefix = %q, want /assets", cfg.Static.Prefix)
		}
		if cfg.Client.MaxBodySize.Bytes() != 25<<20 {
			t.Errorf("MaxBodySize = %d, want %d", cfg.Client.MaxBodySize.Bytes(), 25<<20)
		}
		if !cfg.StatusEnabled() {
			t.Error("status listener should be enabled")
		}
	})

	t.Run("partial document keeps defaults", func(t *testing.T) {
		data := []byte("listen:\n  port: 8080\n")
		cfg, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if cfg.Listen.Port != 8080 {
			t.Errorf("Listen.Port = %d, want 8080", cfg.Listen.Port)
		}
		if cfg.Upstream.Host != "app" || cfg.Upstream.Port != 9000 {
			t.Errorf("upstream defaults lost: %s", cfg.UpstreamAddr())
		}
		if cfg.Static.Root != "/vol/static" {
			t.Errorf("Static.Root = %q, want /vol/static", cfg.Static.Root)
		}
	})

	t.Run("trailing slash normalized", func(t *testing.T) {
		data := []byte("static:\n  prefix: /static/\n  root: /vol/static/\n")
		cfg, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if cfg.Static.Prefix != "/static" {
			t.Errorf("Static.Prefix = %q, want /static", cfg.Static.Prefix)
		}
		if cfg.Static.Root != "/vol/static" {
			t.Errorf("Static.Root = %q, want /vol/static", cfg.Static.Root)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("listen: [whoops"))
		if !errors.Is(err, errors.ErrConfigInvalid) {
			t.Errorf("Parse() error = %v, want CONFIG code", err)
		}
	})

	t.Run("non-numeric port", func(t *testing.T) {
		_, err := Parse([]byte("listen:\n  port: eight thousand\n"))
		if err == nil {
			t.Fatal("Parse() should reject a non-numeric port")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := Parse([]byte("upstream:\n  connect_timeout: soonish\n"))
		if err == nil {
			t.Fatal("Parse() should reject a malformed duration")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return Default() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		contain string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "listen port zero",
			mutate:  func(c *Config) { c.Listen.Port = 0 },
			wantErr: true,
			contain: "listen.port",
		},
		{
			name:    "listen port too large",
			mutate:  func(c *Config) { c.Listen.Port = 70000 },
			wantErr: true,
			contain: "listen.port",
		},
		{
			name:    "missing upstream host",
			mutate:  func(c *Config) { c.Upstream.Host = "" },
			wantErr: true,
			contain: "upstream.host",
		},
		{
			name:    "upstream host ip is fine",
			mutate:  func(c *Config) { c.Upstream.Host = "10.0.0.7" },
			wantErr: false,
		},
		{
			name:    "relative static prefix",
			mutate:  func(c *Config) { c.Static.Prefix = "static" },
			wantErr: true,
			contain: "static.prefix",
		},
		{
			name:    "root-shadowing prefix",
			mutate:  func(c *Config) { c.Static.Prefix = "/" },
			wantErr: true,
			contain: "static.prefix",
		},
		{
			name:    "relative static root",
			mutate:  func(c *Config) { c.Static.Root = "vol/static" },
			wantErr: true,
			contain: "static.root",
		},
		{
			name:    "negative status port",
			mutate:  func(c *Config) { c.Status.Port = -1 },
			wantErr: true,
			contain: "status.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrConfigInvalid) {
					t.Errorf("Validate() error should carry CONFIG code, got %v", err)
				}
				if tt.contain != "" && !strings.Contains(err.Error(), tt.contain) {
					t.Errorf("Validate() error = %q, want mention of %q", err, tt.contain)
				}
			}
		})
	}
}

func TestConfig_Addrs(t *testing.T) {
	cfg := Default()

	if got := cfg.ListenAddr(); got != ":8000" {
		t.Errorf("ListenAddr() = %q, want :8000", got)
	}
	if got := cfg.UpstreamAddr(); got != "app:9000" {
		t.Errorf("UpstreamAddr() = %q, want app:9000", got)
	}

	cfg.Status.Port = 9901
	if got := cfg.StatusAddr(); got != ":9901" {
		t.Errorf("StatusAddr() = %q, want :9901", got)
	}
	if !cfg.StatusEnabled() {
		t.Error("StatusEnabled() = false, want true")
	}
}

func TestLoad(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "listen:\n  port: 8080\nupstream:\n  host: app\n  port: 9000\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Listen.Port != 8080 {
			t.Errorf("Listen.Port = %d, want 8080", cfg.Listen.Port)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, errors.ErrConfigInvalid) {
			t.Errorf("Load() error = %v, want CONFIG code", err)
		}
	})
}
