// Package errors provides standardized error types for wsgate.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the bootstrap pipeline and the proxy server.
//
// # Error Types
//
// ProxyError is the primary error type, containing:
//   - Code: Categorizes the error (TEMPLATE, RENDER, WRITE, etc.)
//   - Message: Human-readable error description
//   - Target: The file path, command, or address involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Error Codes
//
// Codes follow the stages of the launch pipeline and the runtime:
//
//	TEMPLATE  // template missing or unreadable
//	RENDER    // placeholder substitution failed
//	WRITE     // rendered config could not be installed
//	CONFIG    // rendered configuration is invalid
//	HANDOFF   // server process handoff failed
//	GATEWAY   // upstream gateway exchange failed
//	INTERNAL  // unexpected internal error
//
// # Usage
//
// Creating domain-specific errors:
//
//	// Template could not be read
//	return errors.WrapTarget(errors.ErrCodeTemplate, path, err)
//
//	// Placeholders without values
//	return errors.Unresolved([]string{"APP_HOST", "APP_PORT"})
//
//	// Validation error on the rendered config
//	return errors.Validation("listen.port must be between 1 and 65535")
//
//	// Wrapping an underlying error
//	return errors.Wrap(errors.ErrCodeWrite, "failed to install config", err)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrUnresolvedPlaceholder) {
//	    // Handle missing values
//	}
//
// Use errors.As for type assertion:
//
//	var proxyErr *errors.ProxyError
//	if errors.As(err, &proxyErr) {
//	    fmt.Printf("Error code: %s, Target: %s\n", proxyErr.Code, proxyErr.Target)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeTemplate ErrorCode = "TEMPLATE" // Template missing or unreadable
	ErrCodeRender   ErrorCode = "RENDER"   // Placeholder substitution failed
	ErrCodeWrite    ErrorCode = "WRITE"    // Config installation failed
	ErrCodeConfig   ErrorCode = "CONFIG"   // Rendered configuration invalid
	ErrCodeHandoff  ErrorCode = "HANDOFF"  // Process handoff failed
	ErrCodeGateway  ErrorCode = "GATEWAY"  // Upstream gateway exchange failed
	ErrCodeInternal ErrorCode = "INTERNAL" // Internal/unexpected error
)

// ProxyError represents a structured error with context about the operation.
type ProxyError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Target  string    // File path, command, or address (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *ProxyError) Error() string {
	if e.Target != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Target, e.Message, e.Err)
	}
	if e.Target != "" {
		return fmt.Sprintf("%s: %s", e.Target, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ProxyError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *ProxyError) Is(target error) bool {
	t, ok := target.(*ProxyError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrTemplateNotFound indicates the config template does not exist.
	ErrTemplateNotFound = &ProxyError{Code: ErrCodeTemplate, Message: "template not found"}

	// ErrUnresolvedPlaceholder indicates the template references a
	// placeholder with no value.
	ErrUnresolvedPlaceholder = &ProxyError{Code: ErrCodeRender, Message: "unresolved placeholder"}

	// ErrConfigInvalid indicates the rendered configuration is invalid.
	ErrConfigInvalid = &ProxyError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrHandoffFailed indicates the server process could not be started.
	ErrHandoffFailed = &ProxyError{Code: ErrCodeHandoff, Message: "handoff failed"}

	// ErrUpstreamUnavailable indicates the upstream could not be reached.
	ErrUpstreamUnavailable = &ProxyError{Code: ErrCodeGateway, Message: "upstream unavailable"}

	// ErrVarsTooLarge indicates the request vars exceed the protocol limit.
	ErrVarsTooLarge = &ProxyError{Code: ErrCodeGateway, Message: "request vars exceed protocol limit"}
)

// Unresolved creates an error listing placeholders that have no value.
// Names are reported in the order given.
func Unresolved(names []string) error {
	return &ProxyError{
		Code:    ErrCodeRender,
		Message: "unresolved placeholders: " + strings.Join(names, ", "),
	}
}

// Validation creates a configuration validation error with a custom message.
func Validation(msg string) error {
	return &ProxyError{
		Code:    ErrCodeConfig,
		Message: msg,
	}
}

// Handoff creates an error for a failed server process handoff.
func Handoff(command string, err error) error {
	return &ProxyError{
		Code:    ErrCodeHandoff,
		Message: "handoff failed",
		Target:  command,
		Err:     err,
	}
}

// Gateway creates an error for a failed upstream exchange.
func Gateway(addr string, err error) error {
	return &ProxyError{
		Code:    ErrCodeGateway,
		Message: "upstream exchange failed",
		Target:  addr,
		Err:     err,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &ProxyError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapTarget creates an error with target context and underlying error.
func WrapTarget(code ErrorCode, target string, err error) error {
	return &ProxyError{
		Code:   code,
		Target: target,
		Err:    err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As

// New returns an error that formats as the given text.
// This is a re-export of errors.New for convenience.
var New = errors.New
