package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DevTokenPrefix marks a synthetic credential of the form
// "test-token-<uid>-<unix-ms>".
const DevTokenPrefix = "test-token-"

// devTokenMaxAge is the acceptance ceiling for synthetic tokens.
const devTokenMaxAge = 24 * time.Hour

// DevToken accepts synthetic test tokens without contacting any backend.
//
// It exists purely for local and CI environments without live
// credentials. It is a distinct provider implementation rather than a
// token-shape heuristic inside the engine: unless a composition root
// explicitly registers it (the config layer does so only when the
// dev-token flag is set), no production code path can reach it.
type DevToken struct {
	now func() time.Time
}

// NewDevToken constructs the dev-token provider.
func NewDevToken() *DevToken {
	return &DevToken{now: time.Now}
}

// DevTokenFactory returns a Factory for registry use.
func DevTokenFactory() Factory {
	return func(ctx context.Context) (IdentityProvider, error) {
		return NewDevToken(), nil
	}
}

// Name implements IdentityProvider.
func (d *DevToken) Name() string { return "devtoken" }

// Kind implements IdentityProvider.
func (d *DevToken) Kind() Kind { return KindCustom }

// VerifyIDToken implements IdentityProvider. Only tokens matching the
// synthetic pattern and younger than 24 hours are accepted.
func (d *DevToken) VerifyIDToken(ctx context.Context, token string) (*Token, error) {
	if !strings.HasPrefix(token, DevTokenPrefix) {
		return nil, fmt.Errorf("%w: not a dev token", ErrTokenInvalid)
	}

	rest := strings.TrimPrefix(token, DevTokenPrefix)
	sep := strings.LastIndex(rest, "-")
	if sep <= 0 || sep == len(rest)-1 {
		return nil, fmt.Errorf("%w: dev token must be %s<uid>-<unix-ms>", ErrTokenMalformed, DevTokenPrefix)
	}

	uid := rest[:sep]
	millis, err := strconv.ParseInt(rest[sep+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad dev token timestamp: %s", ErrTokenMalformed, err)
	}

	issued := time.UnixMilli(millis)
	if d.now().Sub(issued) > devTokenMaxAge {
		return nil, fmt.Errorf("%w: dev token older than %s", ErrTokenExpired, devTokenMaxAge)
	}

	return &Token{
		UID: uid,
		Claims: map[string]any{
			"sub": uid,
			"dev": true,
		},
		ExpiresAt: issued.Add(devTokenMaxAge),
	}, nil
}

// VerifySessionCookie implements IdentityProvider. Dev tokens have no
// cookie form.
func (d *DevToken) VerifySessionCookie(ctx context.Context, cookie string) (*Token, error) {
	return nil, ErrUnsupported
}

// Probe implements IdentityProvider.
func (d *DevToken) Probe(ctx context.Context) error { return nil }
