// Package errors provides structured error types and exit codes for westcheck.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0 // All comparisons passed
	ExitFailure     = 1 // A comparison exceeded its tolerance, or another runtime failure
	ExitConfigError = 2 // Invalid parameters.json, suite manifest or command line
	ExitInputError  = 3 // Artifact missing, unreadable or in an unexpected format
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindResource
	KindFormat
	KindTolerance
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResource:
		return "resource"
	case KindFormat:
		return "format"
	case KindTolerance:
		return "tolerance"
	default:
		return "runtime"
	}
}

// Error is the base error type for westcheck.
type Error struct {
	Kind    ErrorKind
	Message string
	File    string // Artifact path if applicable
	Key     string // Dotted key path inside the artifact if applicable
	Check   string // Check name if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Check != "" {
		fmt.Fprintf(&b, "[%s] ", e.Check)
	}
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Key != "" {
		b.WriteString(e.Key)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindResource, KindFormat:
		return ExitInputError
	default:
		return ExitFailure
	}
}

// WithCheck returns a copy of the error labelled with a check name.
func (e *Error) WithCheck(check string) *Error {
	c := *e
	c.Check = check
	return &c
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Resource creates an error for an artifact that could not be read.
func Resource(file string, cause error) *Error {
	return &Error{
		Kind:    KindResource,
		Message: "cannot read artifact",
		File:    file,
		Cause:   cause,
	}
}

// Format creates an error for an artifact whose content does not have the
// expected shape at key.
func Format(file, key, message string) *Error {
	return &Error{
		Kind:    KindFormat,
		Message: message,
		File:    file,
		Key:     key,
	}
}

// Formatf creates a format error with formatting.
func Formatf(file, key, format string, args ...interface{}) *Error {
	return Format(file, key, fmt.Sprintf(format, args...))
}

// Tolerance creates an error for values that differ beyond the allowed
// tolerance. Each label names one failing observable or sub-key.
func Tolerance(labels []string, maxDiff float64) *Error {
	return &Error{
		Kind:    KindTolerance,
		Message: fmt.Sprintf("%s (max diff: %v)", strings.Join(labels, "; "), maxDiff),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindRuntime.
func KindOf(err error) ErrorKind {
	var we *Error
	if stderrors.As(err, &we) {
		return we.Kind
	}
	return KindRuntime
}

// IsResource reports whether err is a missing or unreadable artifact.
func IsResource(err error) bool {
	return err != nil && KindOf(err) == KindResource
}

// IsFormat reports whether err is a malformed artifact.
func IsFormat(err error) bool {
	return err != nil && KindOf(err) == KindFormat
}

// IsTolerance reports whether err is a tolerance violation.
func IsTolerance(err error) bool {
	return err != nil && KindOf(err) == KindTolerance
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var we *Error
	if stderrors.As(err, &we) {
		return we.ExitCode()
	}
	return ExitFailure
}
