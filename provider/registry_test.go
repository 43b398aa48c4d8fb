package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("firebase", DevTokenFactory())

	t.Run("registered name", func(t *testing.T) {
		t.Parallel()
		f, err := registry.Get("firebase")
		require.NoError(t, err)
		assert.NotNil(t, f)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := registry.Get("okta")
		require.Error(t, err)
		assert.EqualError(t, err, "unknown identity provider: okta")
	})
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("firebase", DevTokenFactory())
	registry.Register("devtoken", DevTokenFactory())

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		factories, err := registry.Resolve([]string{"devtoken", "firebase"})
		require.NoError(t, err)
		assert.Len(t, factories, 2)
	})

	t.Run("empty list errors", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Resolve(nil)
		assert.EqualError(t, err, "no identity providers configured")
	})

	t.Run("unknown name errors", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Resolve([]string{"firebase", "okta"})
		assert.EqualError(t, err, "unknown identity provider: okta")
	})
}

func TestRegistryNames(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	assert.Empty(t, registry.Names())

	registry.Register("firebase", DevTokenFactory())
	registry.Register("devtoken", DevTokenFactory())
	assert.ElementsMatch(t, []string{"firebase", "devtoken"}, registry.Names())
}
