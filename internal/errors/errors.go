package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for any login failure: unknown
	// username, wrong password or a deactivated account. The causes are
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned when no identity can be established.
	ErrUnauthorized = errors.New("authentication required")
	// ErrInvalidRefreshToken covers every refresh failure mode: unknown,
	// expired, rotated, revoked or owned by a different user.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrCurrentPasswordMismatch is returned when a password change carries
	// a wrong current password.
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")
	// ErrForbidden is returned when an authenticated user lacks permission.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username is already taken")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email is already registered")
	// ErrSelfDeactivation is returned when an admin toggles their own account.
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// PasswordValidationError carries every password rule violated, not just the
// first, so the caller can render them all at once.
type PasswordValidationError struct {
	Reasons []string
}

func (e *PasswordValidationError) Error() string {
	return "password does not meet security requirements"
}

// ErrorResponse is the wire shape of every error payload.
type ErrorResponse struct {
	Error            string   `json:"error"`
	Message          string   `json:"message"`
	Field            string   `json:"field,omitempty"`
	Value            string   `json:"value,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// HTTPError pairs a status code with the response payload to write.
type HTTPError struct {
	StatusCode int
	Response   ErrorResponse
}

func (e *HTTPError) Error() string {
	return e.Response.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so driver and infrastructure failures never leak raw messages.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	var pe *PasswordValidationError
	switch {
	case errors.As(err, &ve):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Response: ErrorResponse{
				Error:   "Validation Error",
				Message: ve.Message,
				Field:   ve.Field,
				Value:   ve.Value,
			},
		}
	case errors.As(err, &pe):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Response: ErrorResponse{
				Error:            "Password Validation Failed",
				Message:          pe.Error(),
				ValidationErrors: pe.Reasons,
			},
		}
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidRefreshToken),
		errors.Is(err, ErrCurrentPasswordMismatch):
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Response:   ErrorResponse{Error: "Unauthorized", Message: err.Error()},
		}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{
			StatusCode: http.StatusForbidden,
			Response:   ErrorResponse{Error: "Forbidden", Message: err.Error()},
		}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Response:   ErrorResponse{Error: "Not Found", Message: err.Error()},
		}
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrSelfDeactivation):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Response:   ErrorResponse{Error: "Bad Request", Message: err.Error()},
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Response:   ErrorResponse{Error: "Internal Server Error", Message: "internal server error"},
		}
	}
}
