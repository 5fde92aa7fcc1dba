// ABOUTME: Coded errors for the shift log core
// ABOUTME: Maps auth, validation, permission, and storage failures to stable codes

// Package errors provides stable error codes for notemma.
//
// Codes follow the format {domain}.{error}. Presentation layers (CLI, MCP)
// switch on the code to decide whether to re-prompt, ask the engineer to
// sign in again, or report a storage problem verbatim.
package errors

import (
	"errors"
	"fmt"
)

const (
	// Auth domain
	CodeAuthInvalid  = "auth.invalid"  // Bad name or PIN
	CodeAuthRequired = "auth.required" // Write attempted while signed out

	// Session domain
	CodeSessionActive = "session.already_on_shift" // startShift while already on shift

	// Validation domain
	CodeValidationFailed = "validation.failed" // Empty message, negative hours, unknown task

	// Storage domain
	CodeStorageOpenFailed  = "storage.open_failed"  // Database open or migration failed
	CodeStorageSaveFailed  = "storage.save_failed"  // Insert failed
	CodeStorageQueryFailed = "storage.query_failed" // Read or aggregate failed

	CodeUnknown = "error.unknown"
)

// CodedError wraps an error with a stable error code.
type CodedError struct {
	Code    string // Stable error code (e.g., "auth.invalid")
	Message string // Human-readable error message
	Cause   error  // Underlying error (may be nil)
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CodedError) Unwrap() error {
	return e.Cause
}

// New creates a new CodedError with the given code and message.
func New(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// Wrap creates a new CodedError wrapping an existing error.
func Wrap(code, message string, cause error) *CodedError {
	return &CodedError{Code: code, Message: message, Cause: cause}
}

// GetCode extracts the error code from an error.
// Falls back to CodeUnknown for errors that carry no code.
func GetCode(err error) string {
	if err == nil {
		return ""
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeUnknown
}

// GetMessage extracts a human-readable message from an error.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Message
	}
	return err.Error()
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// IsAuthentication reports a rejected sign-in.
func IsAuthentication(err error) bool {
	return IsCode(err, CodeAuthInvalid)
}

// IsPermission reports a write attempted without an active shift.
func IsPermission(err error) bool {
	return IsCode(err, CodeAuthRequired)
}

// IsValidation reports input rejected before anything was written.
func IsValidation(err error) bool {
	return IsCode(err, CodeValidationFailed)
}

// IsStorage reports a failure of the underlying medium.
func IsStorage(err error) bool {
	switch GetCode(err) {
	case CodeStorageOpenFailed, CodeStorageSaveFailed, CodeStorageQueryFailed:
		return true
	}
	return false
}

// AuthInvalid creates an "auth.invalid" error.
func AuthInvalid() *CodedError {
	return New(CodeAuthInvalid, "select a name from the roster and enter the correct PIN")
}

// AuthRequired creates an "auth.required" error for the named operation.
func AuthRequired(operation string) *CodedError {
	return New(CodeAuthRequired, fmt.Sprintf("%s requires an active shift, sign in first", operation))
}

// Invalid creates a "validation.failed" error.
func Invalid(format string, args ...any) *CodedError {
	return New(CodeValidationFailed, fmt.Sprintf(format, args...))
}

// SaveFailed creates a "storage.save_failed" error for a table.
func SaveFailed(table string, cause error) *CodedError {
	return Wrap(CodeStorageSaveFailed, fmt.Sprintf("insert into %s failed", table), cause)
}

// QueryFailed creates a "storage.query_failed" error for a table.
func QueryFailed(table string, cause error) *CodedError {
	return Wrap(CodeStorageQueryFailed, fmt.Sprintf("query %s failed", table), cause)
}
