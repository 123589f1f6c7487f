package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// For accounts this is the duplicate account number case.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnbalanced indicates a journal entry whose debits and credits differ beyond tolerance.
var ErrUnbalanced = errors.New("debits must equal credits")

// ErrStorage indicates the persistence layer failed after a change was attempted.
// The change has not been saved.
var ErrStorage = errors.New("storage error")

// ErrUnsupported indicates the configured storage backend lacks an optional capability.
var ErrUnsupported = errors.New("not supported by the storage backend")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError carries an HTTP status code alongside a client-facing message.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
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

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

func NewGatewayTimeoutError(message string) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, nil)
}
