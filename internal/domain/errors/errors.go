package errors

import (
	"net/http"

	"scribe/internal/errors"
)

// AppError is a failure raised outside the resource operations, at the transport
// boundary. It knows its HTTP status and, for fails, the offending field.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Field() string     // Offending field for fail outcomes, empty for errors
}

// BaseError is the stock AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	field     string
}

// NewBaseError creates an error-kind AppError.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// NewFieldError creates a fail-kind AppError scoped to field.
func NewFieldError(httpCode int, errorCode, field, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		field:     field,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Field() string     { return e.field }

// WithMessage returns a copy of e with a different user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	cloned := *e
	cloned.message = message

	return &cloned
}

var (
	// Token errors surface as 403 fails keyed by "token".
	ErrTokenRequired = NewFieldError(
		http.StatusForbidden,
		"TOKEN_REQUIRED",
		"token",
		"An access token is required.",
	)

	ErrTokenInvalid = NewFieldError(
		http.StatusForbidden,
		"TOKEN_INVALID",
		"token",
		"Your access token is invalid or expired.",
	)

	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"The request body could not be parsed.",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"The request failed validation.",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource does not exist.",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later.",
	)
)
