package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	// Test wrapping an error
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	// Test unwrapping
	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	// Test wrapped formatted error
	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.NotNil(t, wrappedFormatted)
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Test wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	// Test deeper wrapping
	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	// Test Is function
	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestPathError(t *testing.T) {
	// Test creating a path error
	pathErr := NewPathError("cannot list", "/path/to/dir", PermissionDenied, nil)
	assert.NotNil(t, pathErr)
	assert.Equal(t, "cannot list: /path/to/dir", pathErr.Error())
	assert.Equal(t, "/path/to/dir", pathErr.Path())
	assert.Equal(t, PermissionDenied, pathErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("operation not permitted")
	pathErr = NewPathError("cannot list", "/path/to/dir", PermissionDenied, origErr)
	assert.Equal(t, "cannot list: /path/to/dir: operation not permitted", pathErr.Error())
	assert.Equal(t, origErr, Unwrap(pathErr))

	// Test predefined errors
	assert.Equal(t, "path not found", ErrNotFound.Error())
	assert.Equal(t, NotFound, ErrNotFound.Kind())

	// Test IsNotFound predicate
	notFoundErr := NewPathError("path not found", "/missing", NotFound, nil)
	assert.True(t, IsNotFound(notFoundErr))
	assert.False(t, IsNotFound(pathErr)) // This is PermissionDenied

	// Test IsPermissionDenied predicate
	assert.True(t, IsPermissionDenied(pathErr))
	assert.False(t, IsPermissionDenied(notFoundErr))

	// Test As for PathError
	var pe *PathError
	assert.True(t, As(pathErr, &pe))
	assert.Equal(t, "/path/to/dir", pe.Path())
}

func TestActionError(t *testing.T) {
	// Test creating an action error
	actionErr := NewActionError("shell refused", "rename", OSRejected, nil)
	assert.NotNil(t, actionErr)
	assert.Equal(t, "shell refused: rename", actionErr.Error())
	assert.Equal(t, "rename", actionErr.Action())
	assert.Equal(t, OSRejected, actionErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("exit status 1")
	actionErr = NewActionError("shell refused", "rename", OSRejected, origErr)
	assert.Equal(t, "shell refused: rename: exit status 1", actionErr.Error())
	assert.Equal(t, origErr, Unwrap(actionErr))

	// Test predefined errors
	assert.Equal(t, "action not supported on this platform", ErrUnsupported.Error())
	assert.Equal(t, Unsupported, ErrUnsupported.Kind())

	// Test predicates
	assert.True(t, IsOSRejected(actionErr))
	assert.False(t, IsUnsupported(actionErr))
	assert.True(t, IsUnsupported(NewActionError("no verbs here", "platform-extension", Unsupported, nil)))

	// Test As for ActionError
	var ae *ActionError
	assert.True(t, As(actionErr, &ae))
	assert.Equal(t, "rename", ae.Action())
}

func TestConfigError(t *testing.T) {
	// Test creating a config error
	configErr := NewConfigError("invalid value", "browser.activate_directories", InvalidConfig, nil)
	assert.NotNil(t, configErr)
	assert.Equal(t, "invalid value: browser.activate_directories", configErr.Error())
	assert.Equal(t, "browser.activate_directories", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	// Test with wrapped error
	origErr := fmt.Errorf("unknown policy")
	configErr = NewConfigError("invalid value", "browser.activate_directories", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: browser.activate_directories: unknown policy", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	// Test predefined errors
	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.Equal(t, InvalidConfig, ErrInvalidConfig.Kind())

	// Test IsInvalidConfig predicate
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestFromOS(t *testing.T) {
	// Nil maps to nil
	assert.Nil(t, FromOS(nil, "/anywhere"))

	// Not-exist errors map to NotFound
	_, statErr := os.Stat("/definitely/not/here/colonnade-test")
	mapped := FromOS(statErr, "/definitely/not/here/colonnade-test")
	assert.True(t, IsNotFound(mapped))
	assert.Equal(t, NotFound, KindOf(mapped))

	// Permission errors map to PermissionDenied
	mapped = FromOS(fs.ErrPermission, "/root/secret")
	assert.True(t, IsPermissionDenied(mapped))

	// Anything else maps to IOError
	mapped = FromOS(fmt.Errorf("device gone"), "/mnt/usb")
	assert.True(t, IsIOError(mapped))

	// The path travels with the error
	var pe *PathError
	assert.True(t, As(mapped, &pe))
	assert.Equal(t, "/mnt/usb", pe.Path())
}

func TestErrorChains(t *testing.T) {
	// Create a chain of errors
	baseErr := errors.New("base error")
	pathErr := NewPathError("listing failed", "/home/user/docs", NotFound, baseErr)
	actionErr := NewActionError("dispatch failed", "delete", OSRejected, pathErr)
	wrapped := Wrap(actionErr, "refresh aborted")

	// Test complete error message
	assert.Equal(t, "refresh aborted: dispatch failed: delete: listing failed: /home/user/docs: base error", wrapped.Error())

	// Test Is function through the chain
	assert.True(t, Is(wrapped, baseErr))
	assert.True(t, Is(wrapped, pathErr))
	assert.True(t, Is(wrapped, actionErr))

	// Test As function through the chain
	var pe *PathError
	assert.True(t, As(wrapped, &pe))
	assert.Equal(t, "/home/user/docs", pe.Path())

	var ae *ActionError
	assert.True(t, As(wrapped, &ae))
	assert.Equal(t, "delete", ae.Action())

	// Predicates see through context wrappers and outer kinds
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsOSRejected(wrapped))
	assert.False(t, IsPermissionDenied(wrapped))

	// KindOf reports the outermost meaningful kind
	assert.Equal(t, OSRejected, KindOf(wrapped))
	assert.Equal(t, Unknown, KindOf(errors.New("foreign")))
}
