// Package logger provides leveled logging for wsgate.
//
// The logger package writes diagnostic output to stderr, separate from
// the user-facing output that goes to stdout. This allows for verbose
// debugging without interfering with normal CLI output or JSON
// formatting, and keeps container logs clean: the rendered startup
// messages go to stdout, everything diagnostic goes to stderr.
//
// Logging is backed by logrus. CLI commands use the package-level
// functions; long-running components (the proxy server, the status
// listener) take the underlying *logrus.Logger via L() so they can
// attach structured fields per request.
//
// # Initialization
//
// Initialize the logger based on the --verbose flag:
//
//	logger.Init(verbose)  // verbose=true enables Debug level
//
// By default (verbose=false), only Warn and Error messages are shown.
// The serve command raises the level to Info and may switch the
// formatter to JSON for log collectors:
//
//	logger.SetLevel("info")
//	logger.UseJSON()
//
// # Usage
//
// Basic logging:
//
//	logger.Debug("Loading template from %s", path)
//	logger.Info("Listening on %s", addr)
//	logger.Warn("Status listener disabled")
//	logger.Error("Upstream exchange failed: %v", err)
//
// Structured logging with fields:
//
//	logger.InfoFields("config rendered", map[string]interface{}{
//	    "template": tmplPath,
//	    "output":   outPath,
//	})
//
// # Separation of Concerns
//
// The logger is for diagnostic output (stderr), while the output
// package is for user-facing messages (stdout with colors). Use logger
// for internal operation details and per-request records; use output
// for success/error messages, tables, and JSON results shown to users.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Global logger instance. Defaults to stderr at Warn level so plain
// CLI runs stay quiet unless something is wrong.
var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// L returns the underlying logrus logger for components that attach
// their own structured fields.
func L() *logrus.Logger {
	return std
}

// Init initializes the global logger with the specified verbosity.
// When verbose is true, Debug and Info levels are enabled.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	if verbose {
		std.SetLevel(logrus.DebugLevel)
	} else {
		std.SetLevel(logrus.WarnLevel)
	}
}

// SetLevel sets the minimum log level by name (debug, info, warn, error).
func SetLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(parsed)
	return nil
}

// UseJSON switches the formatter to JSON. Intended for serve mode,
// where logs are consumed by collectors rather than humans.
func UseJSON() {
	std.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
}

// SetOutput sets the output destination for the global logger.
// Useful for testing. Default is os.Stderr.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug logs a debug message.
// Only shown when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs a warning message.
// Always shown regardless of verbose mode.
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs an error message.
// Always shown regardless of verbose mode.
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields map[string]interface{}) {
	std.WithFields(logrus.Fields(fields)).Debug(msg)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields map[string]interface{}) {
	std.WithFields(logrus.Fields(fields)).Info(msg)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields map[string]interface{}) {
	std.WithFields(logrus.Fields(fields)).Warn(msg)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields map[string]interface{}) {
	std.WithFields(logrus.Fields(fields)).Error(msg)
}

// LogError logs an error with additional context message.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.WithError(err).Error(msg)
}
