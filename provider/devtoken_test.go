package provider

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func TestDevTokenVerifyIDToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	newProvider := func() *DevToken {
		d := NewDevToken()
		d.now = func() time.Time { return now }
		return d
	}

	t.Run("fresh token is accepted", func(t *testing.T) {
		t.Parallel()

		issued := now.Add(-time.Minute)
		token := "test-token-user123-" + millis(issued)

		tok, err := newProvider().VerifyIDToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "user123", tok.UID)
		assert.Equal(t, "user123", tok.Claims["sub"])
		assert.Equal(t, true, tok.Claims["dev"])
		assert.True(t, tok.ExpiresAt.Equal(time.UnixMilli(issued.UnixMilli()).Add(24*time.Hour)))
	})

	t.Run("uid may contain dashes", func(t *testing.T) {
		t.Parallel()

		token := "test-token-user-abc-def-" + millis(now.Add(-time.Minute))
		tok, err := newProvider().VerifyIDToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "user-abc-def", tok.UID)
	})

	t.Run("stale token is expired", func(t *testing.T) {
		t.Parallel()

		token := "test-token-user123-" + millis(now.Add(-25*time.Hour))
		_, err := newProvider().VerifyIDToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token at the age boundary is accepted", func(t *testing.T) {
		t.Parallel()

		token := "test-token-user123-" + millis(now.Add(-24*time.Hour))
		_, err := newProvider().VerifyIDToken(context.Background(), token)
		assert.NoError(t, err)
	})

	t.Run("wrong prefix is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := newProvider().VerifyIDToken(context.Background(), "eyJhbGciOi.something.else")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing timestamp separator is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := newProvider().VerifyIDToken(context.Background(), "test-token-user123")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("empty uid is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := newProvider().VerifyIDToken(context.Background(), "test-token--1700000000000")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("trailing separator is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := newProvider().VerifyIDToken(context.Background(), "test-token-user123-")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("non-numeric timestamp is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := newProvider().VerifyIDToken(context.Background(), "test-token-user123-notamillis")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})
}

func TestDevTokenSessionCookie(t *testing.T) {
	t.Parallel()

	_, err := NewDevToken().VerifySessionCookie(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDevTokenProbe(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewDevToken().Probe(context.Background()))
}

func TestDevTokenFactory(t *testing.T) {
	t.Parallel()

	p, err := DevTokenFactory()(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "devtoken", p.Name())
	assert.Equal(t, KindCustom, p.Kind())
}
