package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prepbettr/unifiedauth/provider"
)

// Logger defines an optional logging interface compatible with log/slog.
// The same interface is consumed by every adapter for consistent logging
// across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Operation names recorded in the performance monitor.
const (
	OpVerifyToken         = "verify_token"
	OpVerifySessionCookie = "verify_session_cookie"
	OpHealthCheck         = "health_check"
)

type engineState int

const (
	stateUninitialized engineState = iota
	stateInitializing
	stateReady
)

// Engine is the single source of truth for turning a raw token or session
// cookie into a trusted AuthenticatedUser, or a typed failure.
//
// Construct one Engine per process at the composition root and share it;
// all methods are safe for concurrent use. Verification methods never
// return a Go error: every failure becomes an invalid
// TokenVerificationResult carrying a closed-taxonomy code.
type Engine struct {
	mu        sync.Mutex
	state     engineState
	factories []provider.Factory
	providers []provider.IdentityProvider

	logger  Logger
	tracer  Tracer
	monitor *PerformanceMonitor

	metricsMu      sync.Mutex
	totalRequests  uint64
	successfulAuth uint64
	failedAuth     uint64
	totalMillis    float64
	failuresByCode map[ErrorCode]uint64
}

// New constructs an Engine with the supplied options. At least one
// provider factory is required. Provider construction is deferred until
// Initialize (or the first verification).
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tracer:         &NoopTracer{},
		monitor:        NewPerformanceMonitor(),
		failuresByCode: make(map[ErrorCode]uint64),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if len(e.factories) == 0 {
		return nil, ErrNoProviders
	}

	return e, nil
}

// Initialize constructs the configured identity-provider clients. It is
// idempotent: a call while ready is a no-op, and concurrent callers share
// a single in-flight initialization. A failed initialization leaves the
// engine uninitialized so a later call can retry.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateReady {
		return nil
	}
	e.state = stateInitializing

	providers := make([]provider.IdentityProvider, 0, len(e.factories))
	for _, factory := range e.factories {
		p, err := factory(ctx)
		if err != nil {
			e.state = stateUninitialized
			if e.logger != nil {
				e.logger.Error("identity provider initialization failed", "error", err)
			}
			authErr := NewServiceUnavailableError("identity provider")
			authErr.Err = err
			return authErr
		}
		providers = append(providers, p)
		if e.logger != nil {
			e.logger.Info("identity provider initialized", "provider", p.Name())
		}
	}

	e.providers = providers
	e.state = stateReady
	return nil
}

// Ready reports whether the engine has completed initialization.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateReady
}

func (e *Engine) ensureInitialized(ctx context.Context) ([]provider.IdentityProvider, error) {
	if err := e.Initialize(ctx); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.providers, nil
}

// ExtractBearerToken returns the token from a raw Authorization header
// value iff the header is exactly the two whitespace-separated fields
// "Bearer" and a non-empty value; otherwise the empty string. Header name
// casing tolerance is an adapter concern.
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// VerifyToken verifies a bearer token against the configured providers in
// priority order, short-circuiting on the first that accepts it. The
// engine lazily initializes on the first call. Metrics are updated
// exactly once per call, after the outcome is determined.
func (e *Engine) VerifyToken(ctx context.Context, token string) *TokenVerificationResult {
	return e.verify(ctx, OpVerifyToken, token, provider.IdentityProvider.VerifyIDToken)
}

// VerifySessionCookie is the parallel verification path for cookie-based
// sessions. Providers without a session-cookie implementation are skipped.
func (e *Engine) VerifySessionCookie(ctx context.Context, cookie string) *TokenVerificationResult {
	return e.verify(ctx, OpVerifySessionCookie, cookie, provider.IdentityProvider.VerifySessionCookie)
}

type verifyFunc func(provider.IdentityProvider, context.Context, string) (*provider.Token, error)

func (e *Engine) verify(ctx context.Context, operation, credential string, verify verifyFunc) (res *TokenVerificationResult) {
	stop := e.monitor.StartTiming(operation)
	ctx, span := e.tracer.Start(ctx, "unifiedauth."+operation)

	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("unexpected failure during verification", "operation", operation, "panic", r)
			}
			res = failedVerification(ErrorCodeUnknownError, "unexpected verification failure")
		}
		elapsed := stop()
		e.recordOutcome(res, elapsed)
		span.SetAttribute("auth.valid", boolString(res.Valid))
		if !res.Valid {
			span.SetAttribute("auth.error_code", string(res.ErrorCode))
		}
		span.End()
	}()

	if credential == "" {
		return failedVerification(ErrorCodeMissingToken, "authorization token is required")
	}

	providers, err := e.ensureInitialized(ctx)
	if err != nil {
		authErr, _ := AsAuthError(err)
		return failedVerification(authErr.Code, authErr.Message)
	}

	// Providers are tried in registration order: primary first. The first
	// acceptance wins; when every provider rejects, the primary's mapped
	// error describes the failure.
	var (
		primaryErr  error
		primaryKind provider.Kind
	)
	for i, p := range providers {
		tok, verr := verify(p, ctx, credential)
		if verr == nil {
			if e.logger != nil {
				e.logger.Debug("credential verified", "operation", operation, "provider", p.Name())
			}
			return validVerification(userFromProviderToken(p.Kind(), tok))
		}
		if e.logger != nil {
			e.logger.Debug("provider rejected credential",
				"operation", operation,
				"provider", p.Name(),
				"error", verr)
		}
		if i == 0 {
			primaryErr = verr
			primaryKind = p.Kind()
		}
	}

	code, message := mapProviderError(primaryErr, primaryKind)
	return failedVerification(code, message)
}

// mapProviderError translates the provider-side failure vocabulary into
// the closed taxonomy. Callers of the engine only ever see these codes,
// regardless of which provider rejected the credential.
func mapProviderError(err error, kind provider.Kind) (ErrorCode, string) {
	switch {
	case err == nil:
		return ErrorCodeInvalidToken, "token verification failed"
	case errors.Is(err, provider.ErrTokenExpired):
		return ErrorCodeExpiredToken, "token has expired"
	case errors.Is(err, provider.ErrTokenRevoked):
		return ErrorCodeInvalidToken, "token has been revoked"
	case errors.Is(err, provider.ErrTokenMalformed):
		return ErrorCodeMalformedToken, "token is malformed"
	case errors.Is(err, provider.ErrTokenInvalid), errors.Is(err, provider.ErrUserNotFound),
		errors.Is(err, provider.ErrUnsupported):
		return ErrorCodeInvalidToken, "token verification failed"
	case errors.Is(err, provider.ErrUnavailable):
		return ErrorCodeServiceUnavailable, "identity provider is currently unavailable"
	case errors.Is(err, provider.ErrNetwork):
		return ErrorCodeNetworkError, "identity provider could not be reached"
	default:
		switch kind {
		case provider.KindFirebase:
			return ErrorCodeFirebaseError, "firebase verification failed"
		case provider.KindAzure:
			return ErrorCodeAzureError, "azure verification failed"
		default:
			return ErrorCodeUnknownError, "token verification failed"
		}
	}
}

func userFromProviderToken(kind provider.Kind, tok *provider.Token) *AuthenticatedUser {
	user := &AuthenticatedUser{
		UID:           tok.UID,
		Email:         stringClaim(tok.Claims, "email"),
		DisplayName:   stringClaim(tok.Claims, "name"),
		PictureURL:    stringClaim(tok.Claims, "picture"),
		EmailVerified: boolClaim(tok.Claims, "email_verified"),
		Claims:        tok.Claims,
		Provider:      providerTag(kind),
	}

	// Custom claims either arrive nested under "custom_claims" or, as
	// with Firebase, flattened into the top-level claim bag.
	if nested, ok := tok.Claims["custom_claims"].(map[string]any); ok {
		user.CustomClaims = nested
	} else if roles, ok := tok.Claims["roles"]; ok {
		user.CustomClaims = map[string]any{"roles": roles}
	}

	return user
}

func providerTag(kind provider.Kind) Provider {
	switch kind {
	case provider.KindFirebase:
		return ProviderFirebase
	case provider.KindAzure:
		return ProviderAzure
	default:
		return ProviderCustom
	}
}

func stringClaim(claims map[string]any, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}

func boolClaim(claims map[string]any, key string) bool {
	if b, ok := claims[key].(bool); ok {
		return b
	}
	return false
}

func validVerification(user *AuthenticatedUser) *TokenVerificationResult {
	res := &TokenVerificationResult{Valid: true, User: user}
	if user.Claims != nil {
		if exp, ok := user.Claims["exp"].(float64); ok {
			t := time.Unix(int64(exp), 0)
			res.ExpiresAt = &t
		}
	}
	return res
}

func failedVerification(code ErrorCode, message string) *TokenVerificationResult {
	return &TokenVerificationResult{
		Valid:     false,
		Error:     message,
		ErrorCode: code,
	}
}

// HasRequiredRoles reports whether user satisfies requiredRoles with
// OR-semantics: true when requiredRoles is empty, or when the user's role
// set intersects it at all. Callers needing every role present must check
// each role separately; AND-composition is deliberately not an engine
// feature. Roles are read only from CustomClaims["roles"]; absent claims
// mean zero roles, never an error.
func (e *Engine) HasRequiredRoles(user *AuthenticatedUser, requiredRoles []string) bool {
	if len(requiredRoles) == 0 {
		return true
	}
	if user == nil {
		return false
	}

	held := user.Roles()
	for _, required := range requiredRoles {
		for _, role := range held {
			if role == required {
				return true
			}
		}
	}
	return false
}

// NewAuthResult is the pure mapping from (user, error) to the public
// AuthResult shape. Success iff user is present and err is nil.
func (e *Engine) NewAuthResult(user *AuthenticatedUser, err error) *AuthResult {
	if err != nil {
		code := ErrorCodeUnknownError
		message := err.Error()
		if authErr, ok := AsAuthError(err); ok {
			code = authErr.Code
			message = authErr.Message
		}
		return &AuthResult{Success: false, Error: message, ErrorCode: code}
	}

	if user == nil {
		return &AuthResult{
			Success:   false,
			Error:     "no authenticated user",
			ErrorCode: ErrorCodeInvalidToken,
		}
	}

	return &AuthResult{Success: true, User: user}
}

// AuthResult converts a verification result into the adapter-facing
// shape.
func (r *TokenVerificationResult) AuthResult() *AuthResult {
	if r.Valid {
		return &AuthResult{Success: true, User: r.User}
	}
	return &AuthResult{Success: false, Error: r.Error, ErrorCode: r.ErrorCode}
}

func (e *Engine) recordOutcome(res *TokenVerificationResult, elapsedMillis float64) {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()

	e.totalRequests++
	e.totalMillis += elapsedMillis
	if res != nil && res.Valid {
		e.successfulAuth++
	} else {
		e.failedAuth++
		code := ErrorCodeUnknownError
		if res != nil && res.ErrorCode != "" {
			code = res.ErrorCode
		}
		e.failuresByCode[code]++
	}
}

// Metrics returns a snapshot of the engine's counters.
func (e *Engine) Metrics() AuthMetrics {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()

	failures := make(map[ErrorCode]uint64, len(e.failuresByCode))
	for code, count := range e.failuresByCode {
		failures[code] = count
	}

	var average float64
	if e.totalRequests > 0 {
		average = e.totalMillis / float64(e.totalRequests)
	}

	return AuthMetrics{
		TotalRequests:       e.totalRequests,
		SuccessfulAuth:      e.successfulAuth,
		FailedAuth:          e.failedAuth,
		AverageVerifyMillis: average,
		FailuresByCode:      failures,
	}
}

// ResetMetrics zeroes all counters.
func (e *Engine) ResetMetrics() {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()

	e.totalRequests = 0
	e.successfulAuth = 0
	e.failedAuth = 0
	e.totalMillis = 0
	e.failuresByCode = make(map[ErrorCode]uint64)
}

// Monitor exposes the engine's performance monitor for stats queries.
func (e *Engine) Monitor() *PerformanceMonitor {
	return e.monitor
}

// HealthCheck reports whether the engine is initialized and probes each
// configured provider for connectivity. The probe is non-destructive; a
// "not found" answer from a provider backend counts as reachable.
func (e *Engine) HealthCheck(ctx context.Context) *HealthStatus {
	stop := e.monitor.StartTiming(OpHealthCheck)
	defer stop()

	status := &HealthStatus{CheckedAt: time.Now()}

	e.mu.Lock()
	ready := e.state == stateReady
	providers := e.providers
	e.mu.Unlock()

	status.Initialized = ready
	if !ready {
		return status
	}

	for _, p := range providers {
		health := ProviderHealth{Name: p.Name(), Reachable: true}
		if err := p.Probe(ctx); err != nil {
			health.Reachable = false
			health.Error = err.Error()
			if e.logger != nil {
				e.logger.Warn("provider health probe failed", "provider", p.Name(), "error", err)
			}
		}
		status.Providers = append(status.Providers, health)
	}

	return status
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
