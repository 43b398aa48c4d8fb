package authechohandler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	unifiedauth "github.com/prepbettr/unifiedauth"
	"github.com/prepbettr/unifiedauth/core"
)

// DefaultUserKey is the echo context key the resolved user is stored
// under.
const DefaultUserKey = "auth_user"

type echoMiddlewareConfig struct {
	userKey      string
	errorHandler func(echo.Context, *unifiedauth.ErrorResponse) error
}

// Middleware returns an Echo middleware authenticating requests against
// the engine. On success the resolved user is stored in the echo context
// (and the request context) and next runs; on failure the standard JSON
// error body is returned and next never runs.
func Middleware(engine *core.Engine, authOpts unifiedauth.Options, opts ...Option) (echo.MiddlewareFunc, error) {
	config := &echoMiddlewareConfig{
		userKey:      DefaultUserKey,
		errorHandler: defaultEchoErrorHandler,
	}
	for _, opt := range opts {
		opt(config)
	}

	mw, err := unifiedauth.New(engine)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := mw.Authenticate(c.Request(), authOpts)
			if result.Response != nil {
				return config.errorHandler(c, result.Response)
			}

			if result.User != nil {
				c.Set(config.userKey, result.User)
				c.SetRequest(c.Request().WithContext(core.SetUser(c.Request().Context(), result.User)))
			}
			return next(c)
		}
	}, nil
}

func defaultEchoErrorHandler(c echo.Context, resp *unifiedauth.ErrorResponse) error {
	return c.JSON(resp.StatusCode, resp.Body)
}

// GetUser retrieves the authenticated user from the echo context.
func GetUser(c echo.Context, userKey string) (*core.AuthenticatedUser, bool) {
	if userKey == "" {
		userKey = DefaultUserKey
	}

	user, ok := c.Get(userKey).(*core.AuthenticatedUser)
	return user, ok
}

// HealthHandler serves the standard health body for this adapter.
func HealthHandler(engine *core.Engine, service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := engine.HealthCheck(c.Request().Context())
		if !status.Healthy() {
			resp := unifiedauth.NewErrorResponse(core.NewServiceUnavailableError(service))
			return c.JSON(resp.StatusCode, resp.Body)
		}
		return c.JSON(http.StatusOK, unifiedauth.NewHealthBody(service))
	}
}
