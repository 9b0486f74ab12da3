package domain

import "errors"

// Common business errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalError      = errors.New("internal error")
)

// AppError carries the HTTP status and a user-facing message.
type AppError struct {
	Code    int    // HTTP status code
	Message string // user-facing message
	Err     error  // wrapped cause
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

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: 404, Message: msg, Err: ErrNotFound}
}

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Err: ErrInvalidInput}
}

// NewDuplicateError reports a unique-key violation. It is a validation
// failure, so the status is 400 rather than 409.
func NewDuplicateError(msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Err: ErrAlreadyExists}
}

// NewAuthenticationError is returned for bad credentials; no token is issued.
func NewAuthenticationError(msg string) *AppError {
	return &AppError{Code: 400, Message: msg, Err: ErrInvalidCredentials}
}

func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: 401, Message: msg, Err: ErrUnauthorized}
}

func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: 403, Message: msg, Err: ErrForbidden}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Code: 500, Message: msg, Err: errors.Join(ErrInternalError, err)}
}
