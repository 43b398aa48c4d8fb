package core

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildJWT serializes a signed token. The signing key is irrelevant to
// the parser under test, which never checks signatures.
func buildJWT(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()

	builder := jwt.NewBuilder().
		Subject(subject).
		Claim("email", "jane@example.com")
	if !expiresAt.IsZero() {
		builder = builder.Expiration(expiresAt)
	}

	token, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte("test-secret")))
	require.NoError(t, err)

	return string(signed)
}

func TestParseTokenInfo(t *testing.T) {
	t.Parallel()

	t.Run("empty string", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, ParseTokenInfo(""))
	})

	t.Run("opaque credential", func(t *testing.T) {
		t.Parallel()

		info := ParseTokenInfo("some-opaque-value")
		require.NotNil(t, info)
		assert.Equal(t, ProviderCustom, info.Provider)
		assert.Equal(t, "some-opaque-value", info.Raw)
		assert.Empty(t, info.UID)
		assert.Nil(t, info.ExpiresAt)
	})

	t.Run("three segments but not a JWT", func(t *testing.T) {
		t.Parallel()

		info := ParseTokenInfo("not.a.jwt")
		require.NotNil(t, info)
		assert.Equal(t, ProviderCustom, info.Provider)
		assert.Equal(t, "not.a.jwt", info.Raw)
	})

	t.Run("well-formed JWT", func(t *testing.T) {
		t.Parallel()

		expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
		raw := buildJWT(t, "user-123", expiresAt)

		info := ParseTokenInfo(raw)
		require.NotNil(t, info)
		assert.Equal(t, ProviderFirebase, info.Provider)
		assert.Equal(t, "user-123", info.UID)
		require.NotNil(t, info.ExpiresAt)
		assert.True(t, info.ExpiresAt.Equal(expiresAt))
		assert.Equal(t, "jane@example.com", info.Claims["email"])
		assert.Equal(t, raw, info.Raw)
	})

	t.Run("JWT without expiry", func(t *testing.T) {
		t.Parallel()

		info := ParseTokenInfo(buildJWT(t, "user-123", time.Time{}))
		require.NotNil(t, info)
		assert.Equal(t, ProviderFirebase, info.Provider)
		assert.Nil(t, info.ExpiresAt)
	})
}

func TestIsTokenExpired(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty token", "", false},
		{"opaque token", "opaque", false},
		{"future expiry", "", false},
		{"past expiry", "", true},
	}
	testCases[2].token = buildJWT(t, "u", time.Now().Add(time.Hour))
	testCases[3].token = buildJWT(t, "u", time.Now().Add(-time.Hour))

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, IsTokenExpired(testCase.token))
		})
	}
}

func TestGetTokenExpiry(t *testing.T) {
	t.Parallel()

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, GetTokenExpiry(""))
	})

	t.Run("opaque token", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, GetTokenExpiry("opaque"))
	})

	t.Run("JWT with expiry", func(t *testing.T) {
		t.Parallel()

		expiresAt := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		got := GetTokenExpiry(buildJWT(t, "u", expiresAt))
		require.NotNil(t, got)
		assert.True(t, got.Equal(expiresAt))
	})
}
