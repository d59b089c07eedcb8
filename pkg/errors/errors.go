package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Resolution errors
	ErrGlob       ErrorCode = "GLOB"
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// Pipeline errors
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrProcessor ErrorCode = "PROCESSOR"

	// Write errors
	ErrTargetExists ErrorCode = "TARGET_EXISTS"
)

// TmplError represents a structured error with code and details
type TmplError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TmplError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TmplError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TmplError) Is(target error) bool {
	var targetErr *TmplError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TmplError with the given code and message
func New(code ErrorCode, message string) *TmplError {
	return &TmplError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TmplError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TmplError {
	return &TmplError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TmplError
func Wrap(err error, code ErrorCode, message string) *TmplError {
	if err == nil {
		return nil
	}
	return &TmplError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TmplError {
	if err == nil {
		return nil
	}
	return &TmplError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TmplError) WithDetail(key string, value interface{}) *TmplError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var tmplErr *TmplError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TmplError
func GetErrorCode(err error) ErrorCode {
	var tmplErr *TmplError
	if errors.As(err, &tmplErr) {
		return tmplErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TmplError
func GetErrorDetails(err error) map[string]interface{} {
	var tmplErr *TmplError
	if errors.As(err, &tmplErr) {
		return tmplErr.Details
	}
	return nil
}
