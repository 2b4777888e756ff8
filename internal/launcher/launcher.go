// Package launcher hands the entrypoint over to the server command once
// the rendered configuration is installed. The default mode replaces
// the process via exec so the server becomes PID 1; supervise mode
// keeps the entrypoint alive as a signal-forwarding parent instead.
package launcher

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"

	"github.com/ksyq12/wsgate/internal/errors"
)

// Signals forwarded to a supervised child.
var forwardedSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
	syscall.SIGQUIT,
	syscall.SIGUSR1,
	syscall.SIGUSR2,
}

// Launcher starts the server command.
type Launcher struct {
	exec Execer
	log  *logrus.Logger
}

// New creates a launcher that performs real process handoffs.
func New(log *logrus.Logger) *Launcher {
	return NewWithExecer(NewSystemExecer(), log)
}

// NewWithExecer creates a launcher with a custom Execer. Used in tests.
func NewWithExecer(e Execer, log *logrus.Logger) *Launcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Launcher{exec: e, log: log}
}

// ServerCommand builds the argv for the handoff. A non-empty override
// is parsed with shell quoting rules; otherwise the entrypoint
// re-executes itself in serve mode against the installed config.
func ServerCommand(override, configPath string) ([]string, error) {
	if override != "" {
		argv, err := shellquote.Split(override)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeHandoff, "parsing server command", err)
		}
		if len(argv) == 0 {
			return nil, errors.Handoff(override, errors.New("empty after parsing"))
		}
		return argv, nil
	}

	self, err := os.Executable()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeHandoff, "resolving own executable", err)
	}
	return []string{self, "serve", "--config", configPath}, nil
}

// Replace swaps the current process for the server command. It returns
// only on failure.
func (l *Launcher) Replace(argv []string) error {
	if len(argv) == 0 {
		return errors.Handoff("", errors.New("no command given"))
	}

	path, err := l.exec.LookPath(argv[0])
	if err != nil {
		return errors.Handoff(argv[0], err)
	}

	l.log.WithField("command", shellquote.Join(argv...)).Info("handing off to server")

	if err := l.exec.Exec(path, argv, os.Environ()); err != nil {
		return errors.Handoff(argv[0], err)
	}
	return nil
}

// Supervise runs the server command as a child with inherited stdio,
// forwards signals to it, and returns its exit code.
func (l *Launcher) Supervise(argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.Handoff("", errors.New("no command given"))
	}

	path, err := l.exec.LookPath(argv[0])
	if err != nil {
		return 0, errors.Handoff(argv[0], err)
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 0, errors.Handoff(argv[0], err)
	}

	l.log.WithFields(logrus.Fields{
		"command": shellquote.Join(argv...),
		"pid":     cmd.Process.Pid,
	}).Info("supervising server")

	signals := make(chan os.Signal, 8)
	signal.Notify(signals, forwardedSignals...)
	defer signal.Stop(signals)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	for {
		select {
		case sig := <-signals:
			_ = cmd.Process.Signal(sig)
		case err := <-done:
			return exitCode(err)
		}
	}
}

// exitCode maps a Wait result to a shell-style code: the child's own
// exit status, or 128 plus the signal number when it was killed.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return 0, errors.Wrap(errors.ErrCodeHandoff, "waiting for server", err)
}
