package unifiedauth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prepbettr/unifiedauth/core"
)

// CustomValidator is an optional final gate evaluated after a successful
// token verification and role check. Returning false rejects the request
// with 403; returning an error rejects it with 500.
type CustomValidator func(ctx context.Context, user *core.AuthenticatedUser) (bool, error)

// Options is the per-route options bag shared by all adapters.
type Options struct {
	// RequiredRoles grants access when the user holds any one of them
	// (OR-semantics, see core.Engine.HasRequiredRoles).
	RequiredRoles []string

	// SkipAuth bypasses verification entirely and passes a nil user
	// through. For intentionally public endpoints that keep the same
	// handler shape.
	SkipAuth bool

	// CustomValidator is the optional final gate.
	CustomValidator CustomValidator
}

// Result is the adapter-level authentication outcome: the engine's
// AuthResult plus, on failure, a ready-to-send error response.
type Result struct {
	*core.AuthResult

	// Response is non-nil iff authentication failed and the request
	// should be short-circuited.
	Response *ErrorResponse
}

// Handler is an http.Handler that also receives the resolved user.
// The user is nil only behind SkipAuth routes.
type Handler func(w http.ResponseWriter, r *http.Request, user *core.AuthenticatedUser)

// Middleware is the net/http platform adapter. It reads credentials from
// the plain request headers (and optionally a session cookie), delegates
// to the core engine, attaches the resolved user to the request context,
// and emits failures as `{error, code, details}` JSON.
type Middleware struct {
	engine         *core.Engine
	tokenExtractor TokenExtractor
	sessionCookie  string
	logger         core.Logger
}

// New constructs the net/http middleware for an engine.
func New(engine *core.Engine, opts ...Option) (*Middleware, error) {
	if engine == nil {
		return nil, ErrEngineNil
	}

	m := &Middleware{
		engine:         engine,
		tokenExtractor: AuthHeaderTokenExtractor,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Authenticate runs the full check sequence for a request: extraction,
// verification, role check, custom validation. It never writes to the
// response; callers decide how to emit Result.Response.
func (m *Middleware) Authenticate(r *http.Request, opts Options) *Result {
	if opts.SkipAuth {
		return &Result{AuthResult: &core.AuthResult{Success: true}}
	}

	ctx := r.Context()

	token, err := m.tokenExtractor(r)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("failed to extract token from request", "error", err, "path", r.URL.Path)
		}
		return failure(core.NewAuthError(core.ErrorCodeMalformedToken, "malformed authorization credential", nil, 0))
	}

	var verification *core.TokenVerificationResult
	switch {
	case token != "":
		verification = m.engine.VerifyToken(ctx, token)
	case m.sessionCookie != "":
		cookie, _ := CookieTokenExtractor(m.sessionCookie)(r)
		if cookie == "" {
			return failure(core.NewMissingTokenError())
		}
		verification = m.engine.VerifySessionCookie(ctx, cookie)
	default:
		return failure(core.NewMissingTokenError())
	}

	if !verification.Valid {
		return failure(core.NewAuthError(verification.ErrorCode, verification.Error, nil, 0))
	}

	user := verification.User
	if !m.engine.HasRequiredRoles(user, opts.RequiredRoles) {
		if m.logger != nil {
			m.logger.Warn("role check failed", "uid", user.UID, "requiredRoles", opts.RequiredRoles)
		}
		return failure(core.NewInsufficientPermissionsError(opts.RequiredRoles))
	}

	if opts.CustomValidator != nil {
		ok, err := opts.CustomValidator(ctx, user)
		if err != nil {
			if m.logger != nil {
				m.logger.Error("custom validator failed", "uid", user.UID, "error", err)
			}
			return &Result{
				AuthResult: m.engine.NewAuthResult(nil, err),
				Response:   ResponseFromError(err),
			}
		}
		if !ok {
			return failure(core.NewAuthError(
				core.ErrorCodeInsufficientPermissions,
				"request rejected by custom validation",
				nil, 0,
			))
		}
	}

	return &Result{AuthResult: m.engine.NewAuthResult(user, nil)}
}

func failure(err *core.AuthError) *Result {
	return &Result{
		AuthResult: &core.AuthResult{Success: false, Error: err.Message, ErrorCode: err.Code},
		Response:   NewErrorResponse(err),
	}
}

// RequireAuth wraps next so it only runs for authenticated requests.
// On success the resolved user is passed to next and stored in the
// request context; on failure the precomputed error response is written
// and next never executes.
func (m *Middleware) RequireAuth(opts Options, next Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := m.Authenticate(r, opts)
		if result.Response != nil {
			result.Response.Write(w)
			return
		}

		if result.User != nil {
			r = r.WithContext(core.SetUser(r.Context(), result.User))
		}
		next(w, r, result.User)
	})
}

// OptionalAuth never short-circuits: it populates the request context
// with the resolved user when a valid credential is present and passes
// the request through either way.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := m.tokenExtractor(r)
		if err == nil && token != "" {
			if verification := m.engine.VerifyToken(r.Context(), token); verification.Valid {
				r = r.WithContext(core.SetUser(r.Context(), verification.User))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// HealthHandler serves the standard health body for this adapter.
func (m *Middleware) HealthHandler(service string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := m.engine.HealthCheck(r.Context())
		if !status.Healthy() {
			NewErrorResponse(core.NewServiceUnavailableError(service)).Write(w)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(NewHealthBody(service))
	})
}
