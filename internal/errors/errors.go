package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotAuthenticated indicates no token is held locally; no request was sent.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeUnauthorized indicates the remote service rejected the token (HTTP 401 or 400).
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeAuthFailed indicates the login credentials were rejected.
	ErrCodeAuthFailed ErrorCode = "auth_failed"
	// ErrCodeRegistrationFailed indicates the registration request was rejected.
	ErrCodeRegistrationFailed ErrorCode = "registration_failed"
	// ErrCodeServer indicates any other non-2xx response from the remote service.
	ErrCodeServer ErrorCode = "server_error"
	// ErrCodeNetwork indicates the remote service could not be reached.
	ErrCodeNetwork ErrorCode = "network_error"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeNotFound indicates a locally stored resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates an internal error (storage, decoding).
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the HTTP status reported by the remote service (0 when no response was received)
	Status int
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

// NotAuthenticated creates the error returned when no token is present locally.
func NotAuthenticated() *AppError {
	return &AppError{
		Code:    ErrCodeNotAuthenticated,
		Message: "No token found. Please login first.",
	}
}

// Unauthorized creates a new Unauthorized error for the given response status.
func Unauthorized(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  status,
	}
}

// AuthFailed creates a new AuthFailed error.
func AuthFailed(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthFailed,
		Message: message,
		Status:  status,
	}
}

// RegistrationFailed creates a new RegistrationFailed error.
func RegistrationFailed(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRegistrationFailed,
		Message: message,
		Status:  status,
	}
}

// Server creates a new ServerError carrying the response status.
func Server(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: message,
		Status:  status,
	}
}

// Network wraps a transport failure.
func Network(err error) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: "Unable to reach the department service",
		Cause:   err,
	}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotAuthenticated checks if an error is a NotAuthenticated error.
func IsNotAuthenticated(err error) bool {
	return isCode(err, ErrCodeNotAuthenticated)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isCode(err, ErrCodeUnauthorized)
}

// IsAuthFailed checks if an error is an AuthFailed error.
func IsAuthFailed(err error) bool {
	return isCode(err, ErrCodeAuthFailed)
}

// IsRegistrationFailed checks if an error is a RegistrationFailed error.
func IsRegistrationFailed(err error) bool {
	return isCode(err, ErrCodeRegistrationFailed)
}

// IsServer checks if an error is a ServerError.
func IsServer(err error) bool {
	return isCode(err, ErrCodeServer)
}

// IsNetwork checks if an error is a NetworkError.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// RequiresReauth reports whether the caller should send the user back to the login screen.
func RequiresReauth(err error) bool {
	return IsNotAuthenticated(err) || IsUnauthorized(err)
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

// GetStatus returns the remote HTTP status carried by an error, or 0.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// Message returns the user-facing message of an AppError without its cause,
// falling back to err.Error() for other errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
