package authginhandler

import (
	"github.com/gin-gonic/gin"

	unifiedauth "github.com/prepbettr/unifiedauth"
)

// Option configures the Gin middleware.
type Option func(*ginMiddlewareConfig)

// WithUserKey sets the gin context key the resolved user is stored
// under.
func WithUserKey(key string) Option {
	return func(c *ginMiddlewareConfig) {
		c.userKey = key
	}
}

// WithErrorHandler replaces how failures are emitted. The default aborts
// with the response's status and JSON body.
func WithErrorHandler(handler func(*gin.Context, *unifiedauth.ErrorResponse)) Option {
	return func(c *ginMiddlewareConfig) {
		c.errorHandler = handler
	}
}
