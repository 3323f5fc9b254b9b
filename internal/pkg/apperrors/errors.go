package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Throttling errors
	ErrRateLimited = errors.New("too many requests")
)

// Graduate record errors
var (
	ErrGraduateNotFound   = errors.New("graduate record not found")
	ErrGraduateNameExists = errors.New("a graduate with this name is already registered")
)

// Field cipher errors
var (
	ErrUndecryptable = errors.New("stored value cannot be decrypted")
)

// FieldError is a validation failure tied to a single request field.
// It unwraps to ErrValidationFailed so callers can match on the kind.
type FieldError struct {
	Field   string
	Message string
}

// Error implements error interface
func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap implements errors.Unwrap interface
func (e *FieldError) Unwrap() error {
	return ErrValidationFailed
}

// NewFieldError creates a validation error for the given field
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError extracts a FieldError from err, if any
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

