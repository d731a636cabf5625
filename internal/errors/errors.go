package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the generation timed out.
	ExitErrorMismatch = 3   // Indicates generators produced different sequences.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. The application cannot proceed until the input is corrected.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// GenerationError encapsulates a failure while producing a sequence while
// preserving the original cause.
type GenerationError struct {
	// Generator is the name of the generator that failed.
	Generator string
	// Cause is the underlying error that triggered this generation error.
	Cause error
}

// Error returns the generator name followed by the underlying cause.
func (e GenerationError) Error() string {
	if e.Generator == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Generator, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e GenerationError) Unwrap() error { return e.Cause }

// TimeoutError represents a generation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code without writing anything.
func ExitCodeFor(err error) int {
	var (
		configErr  ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleGenerationError reports a generation failure on out and returns the
// matching exit code. A nil error is a success and writes nothing.
//
// Parameters:
//   - err: The error returned by the generation.
//   - duration: How long the generation ran before failing.
//   - out: The writer for the diagnostic message.
//
// Returns:
//   - int: The process exit code.
func HandleGenerationError(err error, duration time.Duration, out io.Writer) int {
	code := ExitCodeFor(err)
	if code == ExitSuccess {
		return code
	}
	if out == nil {
		out = io.Discard
	}

	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "Status: Failure (Timeout). %v.\n", timeoutErr)
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached after %s.\n", duration)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled after %s.\n", duration)
	case code == ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
