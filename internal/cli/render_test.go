package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/wsgate/internal/config"
)

func resetRenderFlags() {
	renderTemplatePath = config.DefaultTemplatePath
	renderOutputPath = "-"
}

func TestRunRender_Stdout(t *testing.T) {
	clearKnownVars(t)
	buf := captureOutput(t)
	defer resetRenderFlags()

	renderTemplatePath = builtinTemplate(t)
	renderOutputPath = "-"

	if err := runRender(renderCmd, []string{}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"port: 8000", "host: app", "prefix: /static"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunRender_ToFile(t *testing.T) {
	clearKnownVars(t)
	buf := captureOutput(t)
	defer resetRenderFlags()

	renderTemplatePath = builtinTemplate(t)
	renderOutputPath = filepath.Join(t.TempDir(), "config.yaml")

	if err := runRender(renderCmd, []string{}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	data, err := os.ReadFile(renderOutputPath)
	if err != nil {
		t.Fatalf("output file unreadable: %v", err)
	}
	if !strings.Contains(string(data), "root: /vol/static") {
		t.Errorf("file missing rendered values:\n%s", data)
	}
	if !strings.Contains(buf.String(), "configuration written") {
		t.Errorf("output missing confirmation:\n%s", buf.String())
	}
}

func TestRunRender_EnvOverride(t *testing.T) {
	clearKnownVars(t)
	buf := captureOutput(t)
	defer resetRenderFlags()
	t.Setenv("LISTEN_PORT", "9090")

	renderTemplatePath = builtinTemplate(t)

	if err := runRender(renderCmd, []string{}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if !strings.Contains(buf.String(), "port: 9090") {
		t.Errorf("output missing overridden port:\n%s", buf.String())
	}
}

func TestRunRender_MissingTemplate(t *testing.T) {
	clearKnownVars(t)
	captureOutput(t)
	defer resetRenderFlags()

	renderTemplatePath = filepath.Join(t.TempDir(), "absent.tmpl")

	if err := runRender(renderCmd, []string{}); err == nil {
		t.Error("runRender() succeeded with a missing template")
	}
}
