package unifiedauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepbettr/unifiedauth/provider"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("UNIFIED_AUTH_PROVIDERS", "")
		t.Setenv("UNIFIED_AUTH_ALLOW_DEV_TOKENS", "")
		t.Setenv("UNIFIED_AUTH_CHECK_REVOKED", "")

		cfg := LoadConfig()
		assert.Equal(t, "firebase", cfg.Providers)
		assert.False(t, cfg.AllowDevTokens)
		assert.False(t, cfg.CheckRevoked)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("UNIFIED_AUTH_PROVIDERS", "firebase,devtoken")
		t.Setenv("UNIFIED_AUTH_ALLOW_DEV_TOKENS", "true")
		t.Setenv("UNIFIED_AUTH_CHECK_REVOKED", "true")
		t.Setenv("FIREBASE_PROJECT_ID", "prepbettr-prod")
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")

		cfg := LoadConfig()
		assert.Equal(t, "firebase,devtoken", cfg.Providers)
		assert.True(t, cfg.AllowDevTokens)
		assert.True(t, cfg.CheckRevoked)
		assert.Equal(t, "prepbettr-prod", cfg.FirebaseProjectID)
		assert.Equal(t, "/secrets/sa.json", cfg.FirebaseCredentialsFile)
	})
}

func TestConfigProviderNames(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "single provider",
			cfg:  Config{Providers: "firebase"},
			want: []string{"firebase"},
		},
		{
			name: "ordered list with whitespace",
			cfg:  Config{Providers: " firebase , devtoken "},
			want: []string{"firebase", "devtoken"},
		},
		{
			name: "dev tokens appended as lowest priority",
			cfg:  Config{Providers: "firebase", AllowDevTokens: true},
			want: []string{"firebase", "devtoken"},
		},
		{
			name: "dev tokens not duplicated when listed",
			cfg:  Config{Providers: "devtoken,firebase", AllowDevTokens: true},
			want: []string{"devtoken", "firebase"},
		},
		{
			name: "empty segments are dropped",
			cfg:  Config{Providers: "firebase,,"},
			want: []string{"firebase"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.cfg.ProviderNames())
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	t.Run("dev tokens disabled leaves the provider unregistered", func(t *testing.T) {
		t.Parallel()

		registry := DefaultRegistry(Config{Providers: "firebase"})
		assert.ElementsMatch(t, []string{"firebase"}, registry.Names())

		_, err := registry.Get("devtoken")
		assert.Error(t, err)
	})

	t.Run("dev tokens enabled registers the provider", func(t *testing.T) {
		t.Parallel()

		registry := DefaultRegistry(Config{Providers: "firebase", AllowDevTokens: true})
		assert.ElementsMatch(t, []string{"firebase", "devtoken"}, registry.Names())
	})
}

func TestNewEngineFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("builds an engine from registered providers", func(t *testing.T) {
		t.Parallel()

		registry := provider.NewRegistry()
		registry.Register("firebase", provider.DevTokenFactory())

		engine, err := NewEngineFromConfig(Config{Providers: "firebase"}, registry)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("unknown provider name fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := NewEngineFromConfig(Config{Providers: "okta"}, provider.NewRegistry())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown identity provider: okta")
	})

	t.Run("empty provider list fails fast", func(t *testing.T) {
		t.Parallel()

		_, err := NewEngineFromConfig(Config{Providers: ""}, provider.NewRegistry())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no identity providers configured")
	})
}
