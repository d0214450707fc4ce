// Package errors provides standardized error handling for the colonnade
// application. It defines the error taxonomy the navigator reports
// (NotFound, PermissionDenied, IOError, Unsupported, OSRejected) along with
// helper functions for consistent error creation, wrapping, and inspection.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrNotFound         = NewPathError("path not found", "", NotFound, nil)
	ErrPermissionDenied = NewPathError("permission denied", "", PermissionDenied, nil)
	ErrUnsupported      = NewActionError("action not supported on this platform", "", Unsupported, nil)
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Filesystem error kinds
	NotFound
	PermissionDenied
	IOError
	InvalidPath
	// Shell dispatch error kinds
	Unsupported
	OSRejected
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// String returns a short identifier for the kind, used in logs and the UI.
func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case PermissionDenied:
		return "permission_denied"
	case IOError:
		return "io_error"
	case InvalidPath:
		return "invalid_path"
	case Unsupported:
		return "unsupported"
	case OSRejected:
		return "os_rejected"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// PathError represents errors raised by filesystem operations on a path
type PathError struct {
	ApplicationError
	path string
}

// NewPathError creates a new path error
func NewPathError(msg string, path string, kind ErrorKind, err error) *PathError {
	return &PathError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the path error message
func (e *PathError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *PathError) Path() string {
	return e.path
}

// ActionError represents errors raised while dispatching a shell action
type ActionError struct {
	ApplicationError
	action string
}

// NewActionError creates a new shell action error
func NewActionError(msg string, action string, kind ErrorKind, err error) *ActionError {
	return &ActionError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		action: action,
	}
}

// Error returns the action error message
func (e *ActionError) Error() string {
	if e.action != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.action, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.action)
	}
	return e.ApplicationError.Error()
}

// Action returns the shell action associated with the error
func (e *ActionError) Action() string {
	return e.action
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// FromOS maps an error returned by the os package onto the taxonomy,
// attaching the path it was raised for. A nil error maps to nil.
func FromOS(err error, path string) error {
	if err == nil {
		return nil
	}
	switch {
	case os.IsNotExist(err) || errors.Is(err, fs.ErrNotExist):
		return NewPathError("path not found", path, NotFound, err)
	case os.IsPermission(err) || errors.Is(err, fs.ErrPermission):
		return NewPathError("permission denied", path, PermissionDenied, err)
	default:
		return NewPathError("filesystem error", path, IOError, err)
	}
}

type kinder interface {
	Kind() ErrorKind
}

// KindOf returns the first meaningful taxonomy kind in err's chain, or
// Unknown for foreign errors. Context wrappers added with Wrap carry kind
// Unknown and are skipped, so the kind of the underlying failure survives.
func KindOf(err error) ErrorKind {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if k, ok := e.(kinder); ok && k.Kind() != Unknown {
			return k.Kind()
		}
	}
	return Unknown
}

func hasKind(err error, kind ErrorKind) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if k, ok := e.(kinder); ok && k.Kind() == kind {
			return true
		}
	}
	return false
}

// IsNotFound checks if the error reports a missing path
func IsNotFound(err error) bool {
	return hasKind(err, NotFound)
}

// IsPermissionDenied checks if the error reports denied filesystem access
func IsPermissionDenied(err error) bool {
	return hasKind(err, PermissionDenied)
}

// IsIOError checks if the error reports a low-level filesystem failure
func IsIOError(err error) bool {
	return hasKind(err, IOError)
}

// IsUnsupported checks if the error reports a capability missing on this host
func IsUnsupported(err error) bool {
	return hasKind(err, Unsupported)
}

// IsOSRejected checks if the error reports a shell call the OS refused
func IsOSRejected(err error) bool {
	return hasKind(err, OSRejected)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
