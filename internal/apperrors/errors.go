package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBusinessRule indicates that an operation was rejected by a domain rule
// (e.g. deactivating the base currency, converting with no base currency configured).
var ErrBusinessRule = errors.New("business rule violation")

// AppError carries a status code, a human readable message and an optional
// underlying cause. It unwraps to the sentinel it was built from so errors.Is
// checks against the sentinels above keep working.
type AppError struct {
	Code     int
	Message  string
	Sentinel error
	Cause    error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Sentinel != nil {
		errs = append(errs, e.Sentinel)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewAppError creates a generic AppError without a sentinel.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Sentinel: ErrNotFound}
}

// NewValidationError creates an AppError that satisfies errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Sentinel: ErrValidation}
}

// NewDuplicateError creates an AppError that satisfies errors.Is(err, ErrDuplicate).
func NewDuplicateError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Sentinel: ErrDuplicate}
}

// NewBusinessRuleError creates an AppError that satisfies errors.Is(err, ErrBusinessRule).
func NewBusinessRuleError(message string) *AppError {
	return &AppError{Code: 422, Message: message, Sentinel: ErrBusinessRule}
}
