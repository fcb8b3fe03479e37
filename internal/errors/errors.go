package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Exit codes for choice-ctl
const (
	ExitSuccess           = 0
	ExitGeneralError      = 1
	ExitEmptySelection    = 2
	ExitInvalidSelection  = 3
	ExitRegionNotFound    = 4
	ExitResolutionFailure = 5
	ExitWriteFailure      = 6
	ExitConfigError       = 7
)

// WriteReason classifies a failed hosts table write.
type WriteReason string

const (
	ReasonPermission WriteReason = "permission"
	ReasonIO         WriteReason = "io"
)

// ChoiceError is the base error type for choice-ctl
type ChoiceError struct {
	Code    int
	Message string
	Cause   error

	// Hostname is set for resolution failures.
	Hostname string
	// Reason is set for write failures.
	Reason WriteReason
}

func (e *ChoiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ChoiceError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ChoiceError) ExitCode() int {
	return e.Code
}

// New creates a new ChoiceError
func New(code int, message string) *ChoiceError {
	return &ChoiceError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ChoiceError
func Wrap(code int, message string, cause error) *ChoiceError {
	return &ChoiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// EmptySelection returns an error for an apply with no regions chosen
func EmptySelection() *ChoiceError {
	return New(ExitEmptySelection, "please select at least one server to allow")
}

// InvalidSelection returns an error for a selection of the wrong size
func InvalidSelection(message string) *ChoiceError {
	return New(ExitInvalidSelection, message)
}

// RegionNotFound returns an error for an unknown region identifier
func RegionNotFound(id string) *ChoiceError {
	return New(ExitRegionNotFound, fmt.Sprintf("region not found: %s", id))
}

// ResolutionFailure returns an error for a hostname that could not be resolved
func ResolutionFailure(hostname string, cause error) *ChoiceError {
	err := Wrap(ExitResolutionFailure, fmt.Sprintf("failed to resolve hostname: %s", hostname), cause)
	err.Hostname = hostname
	return err
}

// WriteFailure returns an error for a hosts table that could not be written.
// The message always carries the hint to elevate privileges.
func WriteFailure(reason WriteReason, path string, cause error) *ChoiceError {
	msg := fmt.Sprintf("failed to write to %s (%s). Please run this command with sudo or as administrator", path, reason)
	err := Wrap(ExitWriteFailure, msg, cause)
	err.Reason = reason
	return err
}

// WriteReasonOf classifies a filesystem error for WriteFailure.
func WriteReasonOf(err error) WriteReason {
	if errors.Is(err, fs.ErrPermission) {
		return ReasonPermission
	}
	return ReasonIO
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ChoiceError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *ChoiceError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var choiceErr *ChoiceError
	if errors.As(err, &choiceErr) {
		return choiceErr.ExitCode()
	}
	return ExitGeneralError
}

// IsKind reports whether err's chain holds a ChoiceError with the given code.
func IsKind(err error, code int) bool {
	var choiceErr *ChoiceError
	if errors.As(err, &choiceErr) {
		return choiceErr.Code == code
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
