package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotYetValid     = fmt.Errorf("token is not valid yet")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")
	ErrAccountLocked      = NewHttpError(http.StatusTooManyRequests, "too many failed login attempts, try again later", nil, nil)

	// Context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Generic
	ErrNotFound       = fmt.Errorf("record not found")
	ErrConflict       = fmt.Errorf("record already exists")
	ErrBadRequest     = fmt.Errorf("bad request")
	ErrInternalServer = fmt.Errorf("internal server error")

	// Domain
	ErrRoomNotFound    = fmt.Errorf("room not found: %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("item not found or access denied: %w", ErrNotFound)
	ErrFloorNotFound   = fmt.Errorf("floor not found: %w", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile not found: %w", ErrNotFound)
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and the user-facing message of a failed request.
// Err is logged but never sent to the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

// HTTPStatus maps a domain error onto the status code it should be reported with.
func HTTPStatus(err error) int {
	var httpErr *HttpError
	var invalid *InvalidInputError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &invalid), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenNotYetValid),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrTokenIsNotAccess),
		errors.Is(err, ErrTokenIsNotRefresh),
		errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrUserIDNotFoundInContext):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text that is safe to show to a user for err.
func PublicMessage(err error) string {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}
