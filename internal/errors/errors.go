// Package errors provides the structured error type (ApirefError) used to
// classify every failure the pipeline can surface: parse failures, file
// system boundary failures, type-checker subprocess failures and
// configuration problems.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies an ApirefError. Every stage-level failure falls
// into exactly one category; the CLI boundary maps categories to exit codes.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"
	CategoryParse  ErrorCategory = "parse"

	// File system boundary errors
	CategoryGlob   ErrorCategory = "glob"
	CategoryRead   ErrorCategory = "read"
	CategoryWrite  ErrorCategory = "write"
	CategoryRemove ErrorCategory = "remove"

	// Type-checker subprocess errors
	CategorySpawn     ErrorCategory = "spawn"
	CategoryExecution ErrorCategory = "execution"

	// Rendering and internal errors
	CategoryRender   ErrorCategory = "render"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ApirefError is a structured error with category and context. There is no
// retry concept anywhere in apiref: a failure is reported once and the run
// halts, so unlike most service error types this one carries no retry flag.
type ApirefError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ApirefError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *ApirefError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping.
func (e *ApirefError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *ApirefError) WithContext(key string, value any) *ApirefError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ApirefError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *ApirefError {
	return &ApirefError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ApirefError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ApirefError {
	return &ApirefError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category. The error
// chain is unwrapped, so stage-level wrappers are seen through.
func IsCategory(err error, category ErrorCategory) bool {
	var ae *ApirefError
	if stderrors.As(err, &ae) {
		return ae.Category == category
	}
	return false
}

// GetCategory extracts the category from an error chain, or CategoryInternal
// if no ApirefError is found in it.
func GetCategory(err error) ErrorCategory {
	var ae *ApirefError
	if stderrors.As(err, &ae) {
		return ae.Category
	}
	return CategoryInternal
}
