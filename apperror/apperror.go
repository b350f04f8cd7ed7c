// Package apperror defines a centralized system for application-specific errors.
// Every handler reports failures as an *AppError so that status codes and the
// JSON error body stay consistent across the API, and so that internal detail
// never leaks to a client.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (e.g. invalid credentials, missing session)
	AuthError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g., resource already exists
	ConflictError
)

// internalMessage is the only text a client ever sees for a 5xx response.
const internalMessage = "Internal server error"

// FieldError scopes a message to a single input field.
type FieldError struct {
	Field   string `json:"field,omitempty" example:"email"`
	Message string `json:"message" example:"Invalid email address"`
}

// AppError is a custom error type for the application.
// It wraps an underlying error (`Err`) for server-side logging; only Message
// and Fields are ever rendered to the client.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  []FieldError
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		// DatabaseError, ConfigError, InternalError, MigrationError, UnknownError
		return http.StatusInternalServerError
	}
}

// IsServerError reports whether the error maps to a 5xx response.
func (e *AppError) IsServerError() bool {
	return e.StatusCode() >= http.StatusInternalServerError
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError carrying per-field messages.
func NewValidationError(message string, fields []FieldError) *AppError {
	e := NewAppError(ValidationError, message, nil)
	e.Fields = fields
	return e
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError scoped to one field.
func NewConflictError(field, message string) *AppError {
	e := NewAppError(ConflictError, message, nil)
	e.Fields = []FieldError{{Field: field, Message: message}}
	return e
}

// ErrorResponse represents the error payload returned to API clients.
type ErrorResponse struct {
	Error  string       `json:"error" example:"Invalid input"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Server-side failures always render the same opaque message.
func (e *AppError) ToResponse() ErrorResponse {
	if e.IsServerError() {
		return ErrorResponse{Error: internalMessage}
	}
	return ErrorResponse{Error: e.Message, Errors: e.Fields}
}

// FromError finds an *AppError in err's chain.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	return isType(err, ValidationError)
}

func isType(err error, t ErrorType) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == t
}
