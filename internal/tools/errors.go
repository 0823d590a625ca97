// Package tools defines the tool descriptor model, the registry, and the
// typed failure taxonomy every handler reports through.
package tools

import (
	"errors"
	"fmt"
)

// NotFoundError reports a file or directory that does not exist inside
// the workspace.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// BinaryContentError reports a refusal to read or edit a file the
// classifier considers binary.
type BinaryContentError struct {
	Path string
}

func (e *BinaryContentError) Error() string {
	return fmt.Sprintf("refusing to operate on binary file: %s", e.Path)
}

// EditMatchError reports a surgical edit whose search text matched the
// file zero times or more than once. The file is left unmodified.
type EditMatchError struct {
	Path    string
	Matches int
}

func (e *EditMatchError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("search text not found in %s", e.Path)
	}
	return fmt.Sprintf("search text matches %d locations in %s; make it unambiguous", e.Matches, e.Path)
}

// SpawnError reports a subprocess that could not be started or was cut
// off by the shell timeout. A process that started and exited non-zero
// is NOT a SpawnError; that outcome is returned as data.
type SpawnError struct {
	Cause error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to run command: %v", e.Cause)
}

func (e *SpawnError) Unwrap() error { return e.Cause }

// NetworkPolicyError reports an outbound request to a host absent from
// the configured allow-list. No network I/O was performed.
type NetworkPolicyError struct {
	Host string
}

func (e *NetworkPolicyError) Error() string {
	return fmt.Sprintf("host %q is not in the allowed hosts list", e.Host)
}

// ExecPolicyError reports a shell command the exec policy forbids.
type ExecPolicyError struct {
	Command       string
	Justification string
}

func (e *ExecPolicyError) Error() string {
	if e.Justification != "" {
		return fmt.Sprintf("command forbidden by policy: %s (%s)", e.Command, e.Justification)
	}
	return fmt.Sprintf("command forbidden by policy: %s", e.Command)
}

// ValidationError reports arguments that do not satisfy the tool's
// declared input schema.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments: %s", e.Message)
}

// NewValidationErrorf creates a ValidationError with formatting.
func NewValidationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsBinaryContent reports whether err is a BinaryContentError.
func IsBinaryContent(err error) bool {
	var e *BinaryContentError
	return errors.As(err, &e)
}

// IsEditMatch reports whether err is an EditMatchError.
func IsEditMatch(err error) bool {
	var e *EditMatchError
	return errors.As(err, &e)
}

// IsSpawn reports whether err is a SpawnError.
func IsSpawn(err error) bool {
	var e *SpawnError
	return errors.As(err, &e)
}

// IsNetworkPolicy reports whether err is a NetworkPolicyError.
func IsNetworkPolicy(err error) bool {
	var e *NetworkPolicyError
	return errors.As(err, &e)
}

// IsExecPolicy reports whether err is an ExecPolicyError.
func IsExecPolicy(err error) bool {
	var e *ExecPolicyError
	return errors.As(err, &e)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
