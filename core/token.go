package core

import (
	"context"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenInfo is a best-effort, signature-blind view of a token string.
// It exists for diagnostics and expiry pre-checks only and must never be
// the basis for a trust decision; trust comes from the identity provider.
type TokenInfo struct {
	// Provider is a hint derived from the token's shape: ProviderFirebase
	// for JWT-structured tokens, ProviderCustom otherwise.
	Provider Provider

	// UID is the subject claim, when one is present.
	UID string

	// ExpiresAt is the decoded exp claim, nil when absent or undecodable.
	ExpiresAt *time.Time

	// Claims is the decoded payload claim map for JWT-structured tokens.
	Claims map[string]any

	// Raw is the original token string.
	Raw string
}

// ParseTokenInfo inspects token without verifying its signature. Tokens
// with the three-segment dot-delimited structure have their payload
// decoded; anything else is tagged as a custom credential carrying the
// raw string. Returns nil only for unusable input (empty string).
func ParseTokenInfo(token string) *TokenInfo {
	if token == "" {
		return nil
	}

	info := &TokenInfo{Provider: ProviderCustom, Raw: token}
	if strings.Count(token, ".") != 2 {
		return info
	}

	parsed, err := jwt.Parse([]byte(token), jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		// Structurally a JWT but undecodable; keep the custom tag so
		// callers still see the raw credential.
		return info
	}

	info.Provider = ProviderFirebase
	info.UID = parsed.Subject()
	if exp := parsed.Expiration(); !exp.IsZero() {
		expires := exp
		info.ExpiresAt = &expires
	}
	if claims, err := parsed.AsMap(context.Background()); err == nil {
		info.Claims = claims
	}

	return info
}

// IsTokenExpired reports whether token carries an expiry in the past.
// Tokens without a parseable expiry are treated as not expired; expiry
// enforcement is the identity provider's job.
func IsTokenExpired(token string) bool {
	info := ParseTokenInfo(token)
	if info == nil || info.ExpiresAt == nil {
		return false
	}
	return info.ExpiresAt.Before(time.Now())
}

// GetTokenExpiry returns the token's parsed expiry, or nil when the token
// has none that can be decoded.
func GetTokenExpiry(token string) *time.Time {
	info := ParseTokenInfo(token)
	if info == nil {
		return nil
	}
	return info.ExpiresAt
}
