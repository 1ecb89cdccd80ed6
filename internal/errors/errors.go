// Package errors defines the stable error codes the extraction engine
// reports. Only whole-file failures surface as errors: an unsupported
// extension or a parser that produces no tree at all. Local extraction
// misses inside a plugin are absorbed by design and never reach here.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// UnsupportedLanguage indicates the file extension maps to no known grammar
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ParseFailed indicates the parser could not produce any tree for the file
	ParseFailed ErrorCode = "PARSE_FAILED"
	// InvalidInput indicates the caller passed arguments the engine cannot work with
	InvalidInput ErrorCode = "INVALID_INPUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// ExtractError represents an extraction failure with a stable code.
type ExtractError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	FilePath string    `json:"filePath,omitempty"`
	cause    error     // Underlying error (not exported to JSON)
}

// New creates an ExtractError for the given file.
func New(code ErrorCode, message, filePath string, cause error) *ExtractError {
	return &ExtractError{
		Code:     code,
		Message:  message,
		FilePath: filePath,
		cause:    cause,
	}
}

// Error implements the error interface
func (e *ExtractError) Error() string {
	switch {
	case e.FilePath != "" && e.cause != nil:
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Message, e.FilePath, e.cause)
	case e.FilePath != "":
		return fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, e.FilePath)
	case e.cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error
func (e *ExtractError) Unwrap() error {
	return e.cause
}

// Is lets errors.Is match by code against a bare *ExtractError target.
func (e *ExtractError) Is(target error) bool {
	t, ok := target.(*ExtractError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// CodeOf returns the stable code carried by err, or InternalError when
// err is not an ExtractError.
func CodeOf(err error) ErrorCode {
	if ee, ok := err.(*ExtractError); ok {
		return ee.Code
	}
	return InternalError
}
