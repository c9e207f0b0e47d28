package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation failed")
	ErrConfiguration = errors.New("server misconfigured")
	ErrPersistence   = errors.New("persistence failure")
)

// Error codes carried in the JSON envelope
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodePersistence   = "PERSISTENCE_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports a missing or malformed client-supplied field
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

// Configuration reports missing server configuration. Not retryable without operator action.
func Configuration(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeConfiguration, message, ErrConfiguration)
}

// Persistence wraps a store failure
func Persistence(op string, err error) *AppError {
	e := NewAppError(http.StatusInternalServerError, CodePersistence, op, errors.Join(ErrPersistence, err))
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	e := NewAppError(http.StatusInternalServerError, CodeInternalError, "Internal server error", err)
	if err != nil {
		e.Details = err.Error()
	}
	return e
}
