package errors

import "net/http"

// Kind classifies an application error so handlers can map it to an HTTP
// status without inspecting concrete types.
type Kind int

const (
	Internal Kind = iota
	Validation
	Authentication
	Authorization
	NotFound
)

// AppError carries a user-facing message and an error kind.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// StatusCode maps the error kind to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NewValidation(message string) *AppError {
	return New(Validation, message)
}

func NewAuthentication() *AppError {
	return New(Authentication, "You must be logged in to access this route")
}

func NewAuthorization() *AppError {
	return New(Authorization, "Admin access required")
}

func NewNotFound(message string) *AppError {
	if message == "" {
		message = "Resource not found"
	}
	return New(NotFound, message)
}
