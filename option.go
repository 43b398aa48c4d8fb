package unifiedauth

import (
	"errors"

	"github.com/prepbettr/unifiedauth/core"
)

// Option configures the net/http Middleware.
type Option func(*Middleware) error

// Sentinel errors for configuration validation.
var (
	ErrEngineNil         = errors.New("engine cannot be nil")
	ErrTokenExtractorNil = errors.New("tokenExtractor cannot be nil")
	ErrSessionCookieName = errors.New("session cookie name cannot be empty")
	ErrLoggerNil         = errors.New("logger cannot be nil")
)

// WithTokenExtractor sets the function extracting the credential from
// the request.
//
// Default: AuthHeaderTokenExtractor.
func WithTokenExtractor(extractor TokenExtractor) Option {
	return func(m *Middleware) error {
		if extractor == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = extractor
		return nil
	}
}

// WithSessionCookie enables the session-cookie fallback: requests
// without a bearer token are verified through the engine's
// session-cookie path using the named cookie.
func WithSessionCookie(name string) Option {
	return func(m *Middleware) error {
		if name == "" {
			return ErrSessionCookieName
		}
		m.sessionCookie = name
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
func WithLogger(logger core.Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}
