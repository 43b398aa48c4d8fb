package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		user := &AuthenticatedUser{UID: "user-123", Provider: ProviderFirebase}
		ctx := SetUser(context.Background(), user)

		got, ok := UserFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, user, got)
	})

	t.Run("absent user", func(t *testing.T) {
		t.Parallel()

		got, ok := UserFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("must panics without user", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			MustUserFromContext(context.Background())
		})
	})

	t.Run("must returns user when present", func(t *testing.T) {
		t.Parallel()

		user := &AuthenticatedUser{UID: "user-123"}
		ctx := SetUser(context.Background(), user)
		assert.Same(t, user, MustUserFromContext(ctx))
	})
}

func TestAuthenticatedUserRoles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		user *AuthenticatedUser
		want []string
	}{
		{
			name: "nil user",
			user: nil,
			want: nil,
		},
		{
			name: "no custom claims",
			user: &AuthenticatedUser{UID: "u"},
			want: nil,
		},
		{
			name: "string slice roles",
			user: &AuthenticatedUser{CustomClaims: map[string]any{"roles": []string{"admin"}}},
			want: []string{"admin"},
		},
		{
			name: "decoded JSON roles",
			user: &AuthenticatedUser{CustomClaims: map[string]any{"roles": []any{"admin", "user"}}},
			want: []string{"admin", "user"},
		},
		{
			name: "mixed types keep only strings",
			user: &AuthenticatedUser{CustomClaims: map[string]any{"roles": []any{"admin", 42}}},
			want: []string{"admin"},
		},
		{
			name: "malformed roles claim",
			user: &AuthenticatedUser{CustomClaims: map[string]any{"roles": "admin"}},
			want: nil,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, testCase.user.Roles())
		})
	}
}
