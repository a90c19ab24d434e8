package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/streakstep/internal/logger"
)

var (
	// ErrLoad marks a missing, unreadable or malformed data file. Stores
	// recover from it by falling back to defaults.
	ErrLoad = errors.New("load failed")
	// ErrValidation marks rejected user input. Nothing is mutated.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks a failed write. In-memory state stays authoritative.
	ErrPersistence = errors.New("persistence failed")
	// ErrNotFound marks a journal entry that could not be located by key.
	ErrNotFound = errors.New("not found")
)

// Validation wraps a user-facing validation message with ErrValidation
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the missing key
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// Persistence wraps a write failure with ErrPersistence
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// Load wraps a read or decode failure with ErrLoad
func Load(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
