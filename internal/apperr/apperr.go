// Package apperr defines the error taxonomy shared by all services.
// Handlers match against the sentinel values with errors.Is and map each
// class to an HTTP status.
package apperr

import "errors"

// Sentinel classes. Domain code never returns these directly; it wraps
// them through the constructors below so every error carries a
// user-facing message.
var (
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrAuth          = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrPermission    = errors.New("permission denied")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrConfiguration = errors.New("configuration error")
)

// Error carries a message together with its class sentinel.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Is lets errors.Is(err, apperr.ErrAuth) match without unwrapping chains.
func (e *Error) Is(target error) bool { return target == e.kind }

// New wraps msg in the given class. kind must be one of the sentinels above.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Auth(msg string) error          { return New(ErrAuth, msg) }
func Conflict(msg string) error      { return New(ErrConflict, msg) }
func NotFound(msg string) error      { return New(ErrNotFound, msg) }
func Permission(msg string) error    { return New(ErrPermission, msg) }
func Configuration(msg string) error { return New(ErrConfiguration, msg) }

// FieldError describes a single failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a validation failure with optional field-level detail.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation builds a field-less validation error.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// ValidationFields builds a validation error carrying per-field detail.
func ValidationFields(msg string, fields []FieldError) error {
	return &ValidationError{Message: msg, Fields: fields}
}
