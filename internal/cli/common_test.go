package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/wsgate/internal/config"
	"github.com/ksyq12/wsgate/internal/launcher"
	"github.com/ksyq12/wsgate/internal/output"
	"github.com/ksyq12/wsgate/internal/template"
)

// clearKnownVars unsets every recognized variable so tests see the
// compiled-in defaults regardless of the host environment.
func clearKnownVars(t *testing.T) {
	t.Helper()
	for _, name := range config.KnownVars() {
		t.Setenv(name, "")
	}
	t.Setenv("WSGATE_SERVER_CMD", "")
	t.Setenv("WSGATE_SUPERVISE", "")
}

// captureOutput redirects the output package to a buffer for the test.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	prev := output.SetWriter(&buf)
	t.Cleanup(func() { output.SetWriter(prev) })
	return &buf
}

// swapExecer injects a mock process handoff and restores the previous
// dependencies when the test ends.
func swapExecer(t *testing.T) *launcher.MockExecer {
	t.Helper()
	mock := &launcher.MockExecer{}
	oldDeps := deps
	deps = &Dependencies{Execer: mock}
	t.Cleanup(func() { deps = oldDeps })
	return mock
}

func writeTestTemplate(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml.tmpl")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func builtinTemplate(t *testing.T) string {
	t.Helper()
	return writeTestTemplate(t, template.Builtin())
}
