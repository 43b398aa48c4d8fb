package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a machine-readable authentication error code. The set of
// codes is closed: every failure leaving this package carries exactly one
// of these values, regardless of which provider produced it.
type ErrorCode string

const (
	ErrorCodeMissingToken            ErrorCode = "MISSING_TOKEN"
	ErrorCodeInvalidToken            ErrorCode = "INVALID_TOKEN"
	ErrorCodeExpiredToken            ErrorCode = "EXPIRED_TOKEN"
	ErrorCodeMalformedToken          ErrorCode = "MALFORMED_TOKEN"
	ErrorCodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrorCodeServiceUnavailable      ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeFirebaseError           ErrorCode = "FIREBASE_ERROR"
	ErrorCodeAzureError              ErrorCode = "AZURE_ERROR"
	ErrorCodeNetworkError            ErrorCode = "NETWORK_ERROR"
	ErrorCodeUnknownError            ErrorCode = "UNKNOWN_ERROR"
)

// defaultStatusCodes maps each error code to the HTTP status used when a
// caller does not override it.
var defaultStatusCodes = map[ErrorCode]int{
	ErrorCodeMissingToken:            http.StatusUnauthorized,
	ErrorCodeInvalidToken:            http.StatusUnauthorized,
	ErrorCodeExpiredToken:            http.StatusUnauthorized,
	ErrorCodeMalformedToken:          http.StatusUnauthorized,
	ErrorCodeInsufficientPermissions: http.StatusForbidden,
	ErrorCodeServiceUnavailable:      http.StatusServiceUnavailable,
	ErrorCodeFirebaseError:           http.StatusUnauthorized,
	ErrorCodeAzureError:              http.StatusUnauthorized,
	ErrorCodeNetworkError:            http.StatusServiceUnavailable,
	ErrorCodeUnknownError:            http.StatusInternalServerError,
}

// StatusCode returns the default HTTP status for the code. Unrecognized
// codes map to 500.
func (c ErrorCode) StatusCode() int {
	if status, ok := defaultStatusCodes[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Valid reports whether the code is part of the closed taxonomy.
func (c ErrorCode) Valid() bool {
	_, ok := defaultStatusCodes[c]
	return ok
}

// AuthError is the structured authentication error crossing package
// boundaries. It is raised inside the engine and adapters, caught at
// adapter boundaries and converted into `{error, code, details}` response
// bodies; it is never silently swallowed.
type AuthError struct {
	// Code is one of the closed taxonomy values.
	Code ErrorCode

	// Message is a human-readable description, safe to return to clients.
	Message string

	// Details carries optional structured context (e.g. requiredRoles on
	// a permission failure). May be nil.
	Details map[string]any

	// StatusCode is the HTTP status for this error. Zero means "use the
	// code's default".
	StatusCode int

	// Err is the wrapped underlying error, if any. Never exposed to
	// clients.
	Err error
}

// NewAuthError constructs an AuthError for the given code and message.
// A zero statusCode falls back to the code's default.
func NewAuthError(code ErrorCode, message string, details map[string]any, statusCode int) *AuthError {
	if statusCode == 0 {
		statusCode = code.StatusCode()
	}
	return &AuthError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Named factory constructors keep call sites declarative.

// NewMissingTokenError reports an absent Authorization credential.
func NewMissingTokenError() *AuthError {
	return NewAuthError(ErrorCodeMissingToken, "authorization token is required", nil, 0)
}

// NewInvalidTokenError reports a token no configured provider accepts.
func NewInvalidTokenError(reason string) *AuthError {
	if reason == "" {
		reason = "token verification failed"
	}
	return NewAuthError(ErrorCodeInvalidToken, reason, nil, 0)
}

// NewExpiredTokenError reports a provider-confirmed expired token.
func NewExpiredTokenError() *AuthError {
	return NewAuthError(ErrorCodeExpiredToken, "token has expired", nil, 0)
}

// NewInsufficientPermissionsError reports a role-check failure. The
// required roles are carried in Details for the response body.
func NewInsufficientPermissionsError(requiredRoles []string) *AuthError {
	return NewAuthError(
		ErrorCodeInsufficientPermissions,
		fmt.Sprintf("requires one of roles: %s", strings.Join(requiredRoles, ", ")),
		map[string]any{"requiredRoles": requiredRoles},
		0,
	)
}

// NewServiceUnavailableError reports that an identity provider or the
// engine itself cannot serve verifications.
func NewServiceUnavailableError(service string) *AuthError {
	return NewAuthError(
		ErrorCodeServiceUnavailable,
		fmt.Sprintf("%s is currently unavailable", service),
		map[string]any{"service": service},
		0,
	)
}

// AsAuthError returns the *AuthError in err's chain, if any. Adapters use
// it to decide between a structured taxonomy response and the generic 500
// UNKNOWN_ERROR path.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// IsAuthError reports whether err carries an AuthError.
func IsAuthError(err error) bool {
	_, ok := AsAuthError(err)
	return ok
}
