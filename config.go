package unifiedauth

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/prepbettr/unifiedauth/core"
	"github.com/prepbettr/unifiedauth/provider"
)

// Config describes the engine's environment-driven configuration.
// Defaults are supplied via struct tags and loaded with envdecode.
type Config struct {
	// Providers is the comma-separated, priority-ordered provider list.
	// ENV: UNIFIED_AUTH_PROVIDERS
	Providers string `env:"UNIFIED_AUTH_PROVIDERS,default=firebase"`

	// AllowDevTokens registers the dev-token provider as a verification
	// fallback. Must stay false in production: synthetic test tokens
	// become acceptable credentials when set.
	// ENV: UNIFIED_AUTH_ALLOW_DEV_TOKENS
	AllowDevTokens bool `env:"UNIFIED_AUTH_ALLOW_DEV_TOKENS,default=false"`

	// FirebaseProjectID selects the Firebase project.
	// ENV: FIREBASE_PROJECT_ID
	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`

	// FirebaseCredentialsFile is an optional service-account key path;
	// empty means application-default credentials.
	// ENV: GOOGLE_APPLICATION_CREDENTIALS
	FirebaseCredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// CheckRevoked enables per-verification revocation checks.
	// ENV: UNIFIED_AUTH_CHECK_REVOKED
	CheckRevoked bool `env:"UNIFIED_AUTH_CHECK_REVOKED,default=false"`
}

// LoadConfig populates a Config from the environment.
func LoadConfig() Config {
	var cfg Config
	// Defaults come from struct tags; no field is required.
	_ = envdecode.Decode(&cfg)
	return cfg
}

// ProviderNames returns the ordered provider list. When AllowDevTokens
// is set the dev-token provider is appended as the lowest-priority
// fallback unless already listed.
func (c Config) ProviderNames() []string {
	names := make([]string, 0, 4)
	for _, name := range strings.Split(c.Providers, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	if c.AllowDevTokens {
		listed := false
		for _, name := range names {
			if name == "devtoken" {
				listed = true
				break
			}
		}
		if !listed {
			names = append(names, "devtoken")
		}
	}

	return names
}

// DefaultRegistry returns a registry with the built-in providers
// registered under their canonical names. The dev-token provider is
// registered only when cfg allows it, keeping the synthetic-token path
// unreachable in production configurations.
func DefaultRegistry(cfg Config) *provider.Registry {
	registry := provider.NewRegistry()
	registry.Register("firebase", provider.FirebaseFactory(provider.FirebaseConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.FirebaseCredentialsFile,
		CheckRevoked:    cfg.CheckRevoked,
	}))
	if cfg.AllowDevTokens {
		registry.Register("devtoken", provider.DevTokenFactory())
	}
	return registry
}

// NewEngineFromConfig is the composition-root constructor: it resolves
// the configured providers through the registry and builds the engine.
// Extra options (logger, tracer, monitor) are appended as-is.
func NewEngineFromConfig(cfg Config, registry *provider.Registry, extra ...core.Option) (*core.Engine, error) {
	factories, err := registry.Resolve(cfg.ProviderNames())
	if err != nil {
		return nil, fmt.Errorf("resolving identity providers: %w", err)
	}

	opts := make([]core.Option, 0, len(factories)+len(extra))
	for _, factory := range factories {
		opts = append(opts, core.WithProvider(factory))
	}
	opts = append(opts, extra...)

	return core.New(opts...)
}
