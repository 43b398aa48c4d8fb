// Package provider defines the identity-provider contract consumed by
// the core engine, a registry for selecting configured implementations,
// and the built-in Firebase and dev-token providers.
//
// Providers verify credentials and return identity facts only. They make
// no authorization decisions and hold no per-request state.
package provider

import (
	"context"
	"time"
)

// Kind tags a provider family. The engine uses it to pick the
// provider-specific taxonomy code for unrecognized failures.
type Kind string

const (
	KindFirebase Kind = "firebase"
	KindAzure    Kind = "azure"
	KindCustom   Kind = "custom"
)

// Token is the normalized outcome of a successful verification.
type Token struct {
	// UID is the provider-reported subject. Always non-empty on success.
	UID string

	// Claims is the full decoded claim bag, including any custom claims.
	Claims map[string]any

	// ExpiresAt is the credential expiry, zero when the provider does not
	// report one.
	ExpiresAt time.Time
}

// IdentityProvider is the narrow verification interface the engine calls
// through. Implementations must be safe for concurrent use.
type IdentityProvider interface {
	// Name identifies this provider instance (e.g. "firebase").
	Name() string

	// Kind reports the provider family.
	Kind() Kind

	// VerifyIDToken verifies a bearer token and returns the decoded
	// identity. Failures should be one of the sentinel errors in this
	// package (possibly wrapped) so the engine can map them.
	VerifyIDToken(ctx context.Context, token string) (*Token, error)

	// VerifySessionCookie verifies a session cookie. Providers without a
	// cookie path return ErrUnsupported.
	VerifySessionCookie(ctx context.Context, cookie string) (*Token, error)

	// Probe performs a lightweight, non-destructive connectivity check.
	// An expected "not found"-style answer from the backend counts as
	// connectivity, not failure.
	Probe(ctx context.Context) error
}

// Factory constructs a provider. The engine invokes factories exactly
// once per successful initialization, in registration order.
type Factory func(ctx context.Context) (IdentityProvider, error)
