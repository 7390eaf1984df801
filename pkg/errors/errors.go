package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// Cache errors.
	ErrCacheDirectory   = fmt.Errorf("cache directory cannot be empty")
	ErrCacheRootMissing = fmt.Errorf("missing package cache folder")
	ErrPackageList      = fmt.Errorf("failed to list package directory")

	// Version errors.
	ErrNotAVersion = fmt.Errorf("not a version directory")

	// Deletion errors.
	ErrNoParentDirectory = fmt.Errorf("missing parent directory")

	// Metrics errors.
	ErrMetricsWrite = fmt.Errorf("failed to write metrics file")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Kind groups filesystem failures by how callers should react to them.
type Kind string

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = ""
	// KindNotFound means the target is already gone.
	KindNotFound Kind = "NOT_FOUND"
	// KindPermission means the caller is not allowed to touch the target.
	KindPermission Kind = "PERMISSION"
	// KindOther covers everything else (locks, I/O errors, busy handles, ...).
	KindOther Kind = "OTHER"
)

// Classify returns the Kind of err.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindOther
	}
}

// Category names the concrete failure behind err for warning messages,
// e.g. "rename: directory not empty" or "LinkError".
func Category(err error) string {
	if err == nil {
		return ""
	}

	var errno syscall.Errno
	hasErrno := errors.As(err, &errno)

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		if hasErrno {
			return linkErr.Op + ": " + errno.Error()
		}
		return "LinkError"
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if hasErrno {
			return pathErr.Op + ": " + errno.Error()
		}
		return "PathError"
	}

	if hasErrno {
		return errno.Error()
	}
	inner := err
	for next := errors.Unwrap(inner); next != nil; next = errors.Unwrap(inner) {
		inner = next
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", inner), "*")
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
