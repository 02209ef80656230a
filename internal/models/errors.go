package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorKind classifies an AppError. Every kind is terminal for the current
// operation; the transport layer maps kinds to HTTP statuses.
type ErrorKind string

const (
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindConflict        ErrorKind = "CONFLICT"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindInternal        ErrorKind = "INTERNAL_ERROR"
)

// FieldError is a single violated constraint on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Details string       `json:"details,omitempty"`
}

// AppError represents a custom application error.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed input. Callers should pass every
// violated field at once, not just the first.
func NewValidationError(message string, fields ...FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Fields:  fields,
	}
}

// NewConflictError reports that a uniqueness invariant would be violated.
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewNotFoundError covers absent, soft-deleted, and not-currently-visible
// targets alike, so existence never leaks through the error shape.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewForbiddenError reports an authenticated principal lacking object-level
// permission on an object whose existence is not itself sensitive.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Message: message,
	}
}

// NewUnauthenticatedError reports a missing or invalid principal.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthenticated,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// StatusFor maps an error to its transport status code.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response.
func RespondWithError(c *fiber.Ctx, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:  appErr.Message,
			Code:   string(appErr.Kind),
			Fields: appErr.Fields,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(StatusFor(err)).JSON(response)
}
