package provider

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"
	"google.golang.org/api/option"
)

// probeUID is a reserved subject used for connectivity probes. The
// backend answering "not found" for it proves reachability.
const probeUID = "unified-auth-health-probe"

// FirebaseConfig configures the Firebase identity provider.
type FirebaseConfig struct {
	// ProjectID is the Firebase project. Required unless the credentials
	// file carries one.
	ProjectID string

	// CredentialsFile is an optional path to a service-account key. When
	// empty, application-default credentials apply.
	CredentialsFile string

	// CheckRevoked enables revocation checks on every verification at the
	// cost of a backend round trip per call.
	CheckRevoked bool
}

// firebaseAuthClient is the slice of the Admin SDK auth client the
// provider uses. Narrowed for testability.
type firebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*firebaseauth.Token, error)
	VerifySessionCookieAndCheckRevoked(ctx context.Context, sessionCookie string) (*firebaseauth.Token, error)
	GetUser(ctx context.Context, uid string) (*firebaseauth.UserRecord, error)
}

// Firebase verifies tokens and session cookies against Firebase Auth via
// the Admin SDK.
type Firebase struct {
	client       firebaseAuthClient
	checkRevoked bool
}

// NewFirebase constructs the provider, building the Admin SDK app and
// auth client from cfg.
func NewFirebase(ctx context.Context, cfg FirebaseConfig) (*Firebase, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}

	return &Firebase{client: client, checkRevoked: cfg.CheckRevoked}, nil
}

// FirebaseFactory returns a Factory for registry use.
func FirebaseFactory(cfg FirebaseConfig) Factory {
	return func(ctx context.Context) (IdentityProvider, error) {
		return NewFirebase(ctx, cfg)
	}
}

// Name implements IdentityProvider.
func (f *Firebase) Name() string { return "firebase" }

// Kind implements IdentityProvider.
func (f *Firebase) Kind() Kind { return KindFirebase }

// VerifyIDToken implements IdentityProvider.
func (f *Firebase) VerifyIDToken(ctx context.Context, idToken string) (*Token, error) {
	var (
		decoded *firebaseauth.Token
		err     error
	)
	if f.checkRevoked {
		decoded, err = f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	} else {
		decoded, err = f.client.VerifyIDToken(ctx, idToken)
	}
	if err != nil {
		return nil, translateFirebaseError(err)
	}
	return normalizeFirebaseToken(decoded), nil
}

// VerifySessionCookie implements IdentityProvider.
func (f *Firebase) VerifySessionCookie(ctx context.Context, cookie string) (*Token, error) {
	var (
		decoded *firebaseauth.Token
		err     error
	)
	if f.checkRevoked {
		decoded, err = f.client.VerifySessionCookieAndCheckRevoked(ctx, cookie)
	} else {
		decoded, err = f.client.VerifySessionCookie(ctx, cookie)
	}
	if err != nil {
		return nil, translateFirebaseError(err)
	}
	return normalizeFirebaseToken(decoded), nil
}

// Probe implements IdentityProvider. A user-not-found answer for the
// reserved probe uid is evidence of connectivity, not failure.
func (f *Firebase) Probe(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, probeUID)
	if err == nil || firebaseauth.IsUserNotFound(err) {
		return nil
	}
	return translateFirebaseError(err)
}

func normalizeFirebaseToken(t *firebaseauth.Token) *Token {
	var expires time.Time
	if t.Expires > 0 {
		expires = time.Unix(t.Expires, 0)
	}
	return &Token{
		UID:       t.UID,
		Claims:    t.Claims,
		ExpiresAt: expires,
	}
}

// translateFirebaseError maps Admin SDK errors into the provider
// vocabulary so the engine never sees SDK-specific failures.
func translateFirebaseError(err error) error {
	switch {
	case firebaseauth.IsIDTokenExpired(err), firebaseauth.IsSessionCookieExpired(err):
		return fmt.Errorf("%w: %s", ErrTokenExpired, err)
	case firebaseauth.IsIDTokenRevoked(err), firebaseauth.IsSessionCookieRevoked(err):
		return fmt.Errorf("%w: %s", ErrTokenRevoked, err)
	case firebaseauth.IsIDTokenInvalid(err), firebaseauth.IsSessionCookieInvalid(err):
		return fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	case firebaseauth.IsUserNotFound(err):
		return fmt.Errorf("%w: %s", ErrUserNotFound, err)
	case errorutils.IsUnavailable(err), errorutils.IsInternal(err), errorutils.IsNotFound(err):
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	case errorutils.IsDeadlineExceeded(err):
		return fmt.Errorf("%w: %s", ErrNetwork, err)
	default:
		return err
	}
}
