package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"

	// ErrCodeUnknownRole indicates a mock login with an unrecognized role.
	ErrCodeUnknownRole ErrorCode = "unknown_role"
	// ErrCodeInvalidCredentials indicates a login with an email absent from
	// the directory or a mismatched password.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeNotImplemented indicates an auth flow that is not configured
	// (the external-provider stub).
	ErrCodeNotImplemented ErrorCode = "not_implemented"
	// ErrCodeStorageCorrupt indicates unreadable session data. It is
	// internal only: callers convert it to the logged-out state.
	ErrCodeStorageCorrupt ErrorCode = "storage_corrupt"
	// ErrCodeNetwork indicates a failure reaching the reporting backend.
	ErrCodeNetwork ErrorCode = "network"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use
// with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// UnknownRolef creates a new UnknownRole error with formatted message.
func UnknownRolef(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeUnknownRole, Message: fmt.Sprintf(format, args...)}
}

// InvalidCredentials creates a new InvalidCredentials error. The message is
// deliberately identical for unknown emails and bad passwords.
func InvalidCredentials() *AppError {
	return &AppError{Code: ErrCodeInvalidCredentials, Message: "Invalid email or password"}
}

// NotImplemented creates a new NotImplemented error.
func NotImplemented(message string) *AppError {
	return &AppError{Code: ErrCodeNotImplemented, Message: message}
}

// StorageCorrupt wraps a decode failure of persisted session data.
func StorageCorrupt(err error) *AppError {
	return &AppError{Code: ErrCodeStorageCorrupt, Message: "stored session data is unreadable", Cause: err}
}

// Network wraps a failure reaching the reporting backend.
func Network(err error, message string) *AppError {
	return &AppError{Code: ErrCodeNetwork, Message: message, Cause: err}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsUnknownRole checks if an error is an UnknownRole error.
func IsUnknownRole(err error) bool {
	return isCode(err, ErrCodeUnknownRole)
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsNotImplemented checks if an error is a NotImplemented error.
func IsNotImplemented(err error) bool {
	return isCode(err, ErrCodeNotImplemented)
}

// IsStorageCorrupt checks if an error is a StorageCorrupt error.
func IsStorageCorrupt(err error) bool {
	return isCode(err, ErrCodeStorageCorrupt)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
