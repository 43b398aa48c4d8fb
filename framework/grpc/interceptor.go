package grpcauth

import (
	"context"

	"google.golang.org/grpc"

	"github.com/prepbettr/unifiedauth/core"
)

// CustomValidator is the optional final gate, mirroring the HTTP
// adapters: false maps to PermissionDenied, an error to Internal.
type CustomValidator func(ctx context.Context, user *core.AuthenticatedUser) (bool, error)

// Interceptor provides authentication for gRPC servers backed by the
// core engine.
type Interceptor struct {
	engine          *core.Engine
	tokenExtractor  TokenExtractor
	requiredRoles   []string
	skipAuth        bool
	customValidator CustomValidator
	logger          core.Logger
}

// New creates an Interceptor with the given options.
func New(engine *core.Engine, opts ...Option) *Interceptor {
	i := &Interceptor{
		engine:         engine,
		tokenExtractor: MetadataTokenExtractor,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// authenticate runs the check sequence and returns a context carrying
// the resolved user, or a gRPC status error.
func (i *Interceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	if i.skipAuth {
		return ctx, nil
	}

	token := i.tokenExtractor(ctx)
	if token == "" {
		if i.logger != nil {
			i.logger.Warn("missing credential", "method", method)
		}
		return nil, statusError(core.NewMissingTokenError())
	}

	verification := i.engine.VerifyToken(ctx, token)
	if !verification.Valid {
		if i.logger != nil {
			i.logger.Warn("credential rejected", "method", method, "code", verification.ErrorCode)
		}
		return nil, statusError(core.NewAuthError(verification.ErrorCode, verification.Error, nil, 0))
	}

	user := verification.User
	if !i.engine.HasRequiredRoles(user, i.requiredRoles) {
		return nil, statusError(core.NewInsufficientPermissionsError(i.requiredRoles))
	}

	if i.customValidator != nil {
		ok, err := i.customValidator(ctx, user)
		if err != nil {
			if i.logger != nil {
				i.logger.Error("custom validator failed", "method", method, "error", err)
			}
			unknown := core.NewAuthError(core.ErrorCodeUnknownError, "authentication failed unexpectedly", nil, 0)
			return nil, statusError(unknown)
		}
		if !ok {
			denied := core.NewAuthError(core.ErrorCodeInsufficientPermissions, "request rejected by custom validation", nil, 0)
			return nil, statusError(denied)
		}
	}

	return core.SetUser(ctx, user), nil
}

// UnaryServerInterceptor returns a unary interceptor performing
// authentication before invoking the handler. The handler never runs on
// failure.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a stream interceptor performing
// authentication before the stream handler runs.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authCtx})
	}
}

// wrappedServerStream overrides the stream context with the
// authenticated one.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
