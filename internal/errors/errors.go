package errors

import (
	"errors"
	"fmt"
)

// Exit codes for prisma
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 2
	ExitValidation   = 3
	ExitScriptError  = 4
	ExitOutputError  = 5
)

// PrismaError is the base error type for prisma
type PrismaError struct {
	Code    int
	Message string
	Cause   error
}

func (e *PrismaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PrismaError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *PrismaError) ExitCode() int {
	return e.Code
}

// New creates a new PrismaError
func New(code int, message string) *PrismaError {
	return &PrismaError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PrismaError
func Wrap(code int, message string, cause error) *PrismaError {
	return &PrismaError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for settings file or environment issues
func ConfigError(message string, cause error) *PrismaError {
	return Wrap(ExitConfigError, message, cause)
}

// UnknownSection returns an error for a section key missing from the registry
func UnknownSection(key string) *PrismaError {
	return New(ExitScriptError, fmt.Sprintf("unknown section: %s", key))
}

// UnknownField returns an error for a field the section does not expose
func UnknownField(section, field string) *PrismaError {
	return New(ExitScriptError, fmt.Sprintf("unknown field: %s.%s", section, field))
}

// ScriptError returns an error for a malformed edit command or script
func ScriptError(message string, cause error) *PrismaError {
	return Wrap(ExitScriptError, message, cause)
}

// ValidationFailed returns an error when edits were rejected by field validation
func ValidationFailed(rejected int) *PrismaError {
	noun := "edits"
	if rejected == 1 {
		noun = "edit"
	}
	return New(ExitValidation, fmt.Sprintf("%d %s rejected", rejected, noun))
}

// OutputError returns an error for rendering or writing the document
func OutputError(op string, cause error) *PrismaError {
	return Wrap(ExitOutputError, fmt.Sprintf("output %s failed", op), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var prismaErr *PrismaError
	if errors.As(err, &prismaErr) {
		return prismaErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
