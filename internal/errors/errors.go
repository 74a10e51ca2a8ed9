package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// StatusCode returns the HTTP status for the kind. Conflicts on unique
// fields are reported as bad requests.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error carrying its kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a validation error with optional field details.
func Validation(message string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

var (
	// ErrUnauthenticated is returned when no bearer credential is presented.
	ErrUnauthenticated = New(KindUnauthenticated, "No token provided")
	// ErrInvalidToken is returned when the credential is malformed, expired or forged.
	ErrInvalidToken = New(KindUnauthenticated, "Invalid token")
	// ErrUnknownIdentity is returned when the token's user no longer exists.
	ErrUnknownIdentity = New(KindUnauthenticated, "User not found")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = New(KindUnauthenticated, "Invalid credentials")
	// ErrForbidden is returned when a non-admin targets a resource they do not own.
	ErrForbidden = New(KindForbidden, "Access denied")
	// ErrAdminRequired is returned when an admin-only route is called by a user.
	ErrAdminRequired = New(KindForbidden, "Admin access required")
	// ErrTicketNotFound is returned when a ticket does not exist.
	ErrTicketNotFound = New(KindNotFound, "Ticket not found")
	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = New(KindNotFound, "Category not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = New(KindNotFound, "User not found")
	// ErrAssigneeNotFound is returned when a ticket is assigned to an unknown user.
	ErrAssigneeNotFound = New(KindNotFound, "Assignee not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = New(KindConflict, "Email already registered")
	// ErrCategoryNameTaken is returned when a category name is reused.
	ErrCategoryNameTaken = New(KindConflict, "Category name already exists")
)

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Message    string       `json:"message"`
	StatusCode int          `json:"statusCode"`
	Timestamp  string       `json:"timestamp"`
	Details    []FieldError `json:"details,omitempty"`
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, details ...FieldError) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse(now time.Time) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Timestamp:  now.UTC().Format(timestampLayout),
		Details:    e.Details,
	}}
}

// MapErrorToHTTP maps domain, validation, framework and storage errors to
// HTTP errors. Anything unrecognised becomes a 500 without leaking detail.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindInternal {
			return NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
		}
		return NewHTTPError(appErr.Kind.StatusCode(), appErr.Message, appErr.Details...)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewHTTPError(http.StatusBadRequest, "Validation failed", fieldErrors(verrs)...)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return NewHTTPError(echoErr.Code, http.StatusText(echoErr.Code)+messageSuffix(echoErr))
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewHTTPError(http.StatusNotFound, "Record not found")
	}

	return NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
}

func messageSuffix(e *echo.HTTPError) string {
	msg, ok := e.Message.(string)
	if !ok || msg == "" || msg == http.StatusText(e.Code) {
		return ""
	}
	return ": " + msg
}

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "hexcolor6":
		return "must be a hex color such as #AABBCC"
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
