package authechohandler

import (
	"github.com/labstack/echo/v4"

	unifiedauth "github.com/prepbettr/unifiedauth"
)

// Option configures the Echo middleware.
type Option func(*echoMiddlewareConfig)

// WithUserKey sets the echo context key the resolved user is stored
// under.
func WithUserKey(key string) Option {
	return func(c *echoMiddlewareConfig) {
		c.userKey = key
	}
}

// WithErrorHandler replaces how failures are emitted. The default
// returns the response's status and JSON body.
func WithErrorHandler(handler func(echo.Context, *unifiedauth.ErrorResponse) error) Option {
	return func(c *echoMiddlewareConfig) {
		c.errorHandler = handler
	}
}
