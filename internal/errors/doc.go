// Package apperrors holds the typed errors of fibseq and their mapping to
// process exit codes. Configuration, generation, timeout and validation
// failures each have a type; those wrapping a cause implement Unwrap so
// errors.Is and errors.As see through them.
//
// Callers add context with fmt.Errorf("...: %w", err) or WrapError.
package apperrors
