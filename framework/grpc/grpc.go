// Package grpcauth adapts the unified authentication engine to gRPC
// server interceptors. Failures surface as gRPC status errors carrying
// the taxonomy code in the message: token problems map to
// Unauthenticated, authorization problems to PermissionDenied, provider
// outages to Unavailable, and unexpected failures to Internal.
package grpcauth

import (
	"context"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/prepbettr/unifiedauth/core"
)

// TokenExtractor extracts a credential from the incoming context.
// Return an empty string when no credential is present.
type TokenExtractor func(ctx context.Context) string

// MetadataTokenExtractor reads the bearer token from the "authorization"
// metadata key (gRPC metadata keys are lowercased on the wire).
func MetadataTokenExtractor(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}
	return core.ExtractBearerToken(values[0])
}

// grpcCode maps a taxonomy error's HTTP status onto a gRPC code.
func grpcCode(err *core.AuthError) codes.Code {
	switch err.StatusCode {
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func statusError(err *core.AuthError) error {
	return status.Errorf(grpcCode(err), "%s: %s", err.Code, err.Message)
}
