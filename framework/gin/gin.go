package authginhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	unifiedauth "github.com/prepbettr/unifiedauth"
	"github.com/prepbettr/unifiedauth/core"
)

// DefaultUserKey is the gin context key the resolved user is stored
// under.
const DefaultUserKey = "auth_user"

var (
	ErrMissingUser = errors.New("no authenticated user found in context")
	ErrInvalidUser = errors.New("invalid authenticated user type")
)

type ginMiddlewareConfig struct {
	userKey      string
	errorHandler func(*gin.Context, *unifiedauth.ErrorResponse)
}

// Middleware returns a Gin middleware authenticating requests against
// the engine. On success the resolved user is stored in the gin context
// (and the request context) and the chain continues; on failure the
// request is aborted with the standard `{error, code, details}` body.
func Middleware(engine *core.Engine, authOpts unifiedauth.Options, opts ...Option) (gin.HandlerFunc, error) {
	config := &ginMiddlewareConfig{
		userKey:      DefaultUserKey,
		errorHandler: defaultGinErrorHandler,
	}
	for _, opt := range opts {
		opt(config)
	}

	mw, err := unifiedauth.New(engine)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		result := mw.Authenticate(c.Request, authOpts)
		if result.Response != nil {
			config.errorHandler(c, result.Response)
			return
		}

		if result.User != nil {
			c.Set(config.userKey, result.User)
			c.Request = c.Request.WithContext(core.SetUser(c.Request.Context(), result.User))
		}
		c.Next()
	}, nil
}

func defaultGinErrorHandler(c *gin.Context, resp *unifiedauth.ErrorResponse) {
	c.AbortWithStatusJSON(resp.StatusCode, resp.Body)
}

// GetUser retrieves the authenticated user from the gin context.
func GetUser(c *gin.Context, userKey string) (*core.AuthenticatedUser, error) {
	if userKey == "" {
		userKey = DefaultUserKey
	}

	value, exists := c.Get(userKey)
	if !exists {
		return nil, ErrMissingUser
	}

	user, ok := value.(*core.AuthenticatedUser)
	if !ok {
		return nil, ErrInvalidUser
	}
	return user, nil
}

// HealthHandler serves the standard health body for this adapter.
func HealthHandler(engine *core.Engine, service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := engine.HealthCheck(c.Request.Context())
		if !status.Healthy() {
			resp := unifiedauth.NewErrorResponse(core.NewServiceUnavailableError(service))
			c.AbortWithStatusJSON(resp.StatusCode, resp.Body)
			return
		}
		c.JSON(http.StatusOK, unifiedauth.NewHealthBody(service))
	}
}
