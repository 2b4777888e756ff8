package launcher

import (
	"os/exec"
	"syscall"
)

// Execer abstracts process replacement so the handoff can be tested
// without leaving the test binary.
type Execer interface {
	// LookPath resolves a command name against PATH.
	LookPath(file string) (string, error)

	// Exec replaces the current process image. On success it does not
	// return.
	Exec(path string, argv []string, env []string) error
}

// SystemExecer implements Execer with a real execve(2).
type SystemExecer struct{}

// NewSystemExecer creates a new SystemExecer.
func NewSystemExecer() *SystemExecer {
	return &SystemExecer{}
}

// LookPath searches for an executable in PATH.
func (e *SystemExecer) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Exec replaces the current process with the given command.
func (e *SystemExecer) Exec(path string, argv []string, env []string) error {
	return syscall.Exec(path, argv, env)
}

// MockExecer is a mock implementation for testing.
type MockExecer struct {
	LookPathFunc func(file string) (string, error)
	ExecFunc     func(path string, argv []string, env []string) error
	Calls        []ExecCall
}

// ExecCall records an attempted process replacement for verification.
type ExecCall struct {
	Path string
	Argv []string
	Env  []string
}

// LookPath calls the mock function.
func (m *MockExecer) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Exec calls the mock function.
func (m *MockExecer) Exec(path string, argv []string, env []string) error {
	m.Calls = append(m.Calls, ExecCall{Path: path, Argv: argv, Env: env})
	if m.ExecFunc != nil {
		return m.ExecFunc(path, argv, env)
	}
	return nil
}
