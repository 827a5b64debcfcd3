package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrAlreadyExists        = errors.New("resource already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrAuthHeaderMissing    = errors.New("authorization header missing")
	ErrMalformedCredentials = errors.New("malformed basic credentials")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeUsed             = errors.New("verification code already used")
	ErrVerificationPending  = errors.New("verification pending")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrPublishFailed        = errors.New("notification publish failed")
)

// AppError represents an application error with an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrInvalidCredentials)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrEmailNotVerified)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "An internal server error occurred. Please try again later.", err)
}

func ServiceUnavailable(err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "service unavailable", err)
}

// StorageUnavailable wraps a backend failure as the typed storage outage error
func StorageUnavailable(err error) error {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "An internal server error occurred. Please try again later.",
		Err:     errors.Join(ErrStorageUnavailable, err),
	}
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}
