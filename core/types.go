package core

import "time"

// Provider tags which backend resolved an identity.
type Provider string

const (
	ProviderFirebase Provider = "firebase"
	ProviderAzure    Provider = "azure"
	ProviderCustom   Provider = "custom"
)

// AuthenticatedUser is the resolved identity for a single request. It is
// immutable once constructed and never persisted by this package.
type AuthenticatedUser struct {
	// UID is the provider-reported subject. Always non-empty.
	UID string

	// Optional profile attributes, populated when the provider reports
	// them.
	Email         string
	DisplayName   string
	PictureURL    string
	EmailVerified bool

	// Claims is the raw provider claim bag, if available.
	Claims map[string]any

	// CustomClaims holds provider-attached metadata. Role lookups read
	// only CustomClaims["roles"].
	CustomClaims map[string]any

	// Provider identifies which backend verified the credential.
	Provider Provider
}

// Roles returns the user's role list from CustomClaims["roles"]. Absent
// or malformed claims yield an empty list, never an error.
func (u *AuthenticatedUser) Roles() []string {
	if u == nil || u.CustomClaims == nil {
		return nil
	}

	switch v := u.CustomClaims["roles"].(type) {
	case []string:
		return v
	case []any:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return nil
	}
}

// TokenVerificationResult is the outcome of a single verification
// attempt. It is created per call and discarded once consumed. A result
// with Valid set always carries a non-nil User.
type TokenVerificationResult struct {
	Valid     bool
	User      *AuthenticatedUser
	Error     string
	ErrorCode ErrorCode
	ExpiresAt *time.Time
}

// AuthResult is the public, adapter-agnostic outcome built from a
// TokenVerificationResult. Success is true iff User is non-nil and no
// error is set.
type AuthResult struct {
	Success   bool
	User      *AuthenticatedUser
	Error     string
	ErrorCode ErrorCode
}

// AuthMetrics is a snapshot of the engine's process-wide counters.
// Counters reset on ResetMetrics and do not survive process restarts.
type AuthMetrics struct {
	TotalRequests  uint64
	SuccessfulAuth uint64
	FailedAuth     uint64

	// AverageVerifyMillis is the running average verification latency
	// across all calls since the last reset.
	AverageVerifyMillis float64

	// FailuresByCode counts failures per taxonomy code.
	FailuresByCode map[ErrorCode]uint64
}

// ProviderHealth is the outcome of a single provider connectivity probe.
type ProviderHealth struct {
	Name      string
	Reachable bool
	Error     string
}

// HealthStatus reports whether the engine is initialized and whether each
// configured provider answered its connectivity probe.
type HealthStatus struct {
	Initialized bool
	Providers   []ProviderHealth
	CheckedAt   time.Time
}

// Healthy reports whether the engine is initialized and every provider is
// reachable.
func (h *HealthStatus) Healthy() bool {
	if !h.Initialized {
		return false
	}
	for _, p := range h.Providers {
		if !p.Reachable {
			return false
		}
	}
	return true
}
