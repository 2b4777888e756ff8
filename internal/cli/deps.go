package cli

import (
	"github.com/ksyq12/wsgate/internal/launcher"
)

// Dependencies aggregates the CLI's external effects for testability
type Dependencies struct {
	// Execer performs the process handoff for run.
	Execer launcher.Execer
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	Execer: launcher.NewSystemExecer(),
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}
