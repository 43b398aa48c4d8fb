package provider

import "errors"

// Sentinel errors forming the provider-side failure vocabulary. Each
// provider translates its SDK's errors into these before they reach the
// engine, which maps them into the public taxonomy.
var (
	// ErrTokenExpired means the provider confirmed the credential is
	// expired.
	ErrTokenExpired = errors.New("provider: token expired")

	// ErrTokenRevoked means the credential was valid but has been
	// revoked.
	ErrTokenRevoked = errors.New("provider: token revoked")

	// ErrTokenMalformed means the credential could not be decoded at all.
	ErrTokenMalformed = errors.New("provider: token malformed")

	// ErrTokenInvalid means the credential decoded but failed
	// verification (bad signature, wrong audience, unknown issuer).
	ErrTokenInvalid = errors.New("provider: token invalid")

	// ErrUserNotFound means the backend has no record for the subject.
	ErrUserNotFound = errors.New("provider: user not found")

	// ErrUnavailable means the backend could not serve the request
	// (outage, misconfiguration, project not found).
	ErrUnavailable = errors.New("provider: service unavailable")

	// ErrNetwork means the backend could not be reached at all.
	ErrNetwork = errors.New("provider: network error")

	// ErrUnsupported means the provider has no implementation for the
	// requested operation (e.g. session cookies on a token-only backend).
	ErrUnsupported = errors.New("provider: operation not supported")
)
