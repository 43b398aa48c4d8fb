package unifiedauth

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogrusLogger(t *testing.T) {
	t.Parallel()

	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	logger := NewLogrusLogger(base)

	logger.Warn("credential rejected", "provider", "firebase", "code", "EXPIRED_TOKEN")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "credential rejected", entry.Message)
	assert.Equal(t, "firebase", entry.Data["provider"])
	assert.Equal(t, "EXPIRED_TOKEN", entry.Data["code"])

	logger.Debug("verified")
	logger.Info("initialized")
	logger.Error("failed")
	assert.Len(t, hook.Entries, 4)
}

func TestZapLogger(t *testing.T) {
	t.Parallel()

	zapCore, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(zapCore).Sugar())

	logger.Info("identity provider initialized", "provider", "firebase")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "identity provider initialized", entry.Message)
	assert.Equal(t, "firebase", entry.ContextMap()["provider"])
}

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Error("provider health probe failed", "provider", "firebase")

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"provider":"firebase"`)
	assert.Contains(t, out, "provider health probe failed")
}

func TestFields(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []any
		want map[string]any
	}{
		{
			name: "no args",
			args: nil,
			want: nil,
		},
		{
			name: "key value pairs",
			args: []any{"provider", "firebase", "attempts", 3},
			want: map[string]any{"provider": "firebase", "attempts": 3},
		},
		{
			name: "trailing key without value",
			args: []any{"provider", "firebase", "orphan"},
			want: map[string]any{"provider": "firebase", "orphan": ""},
		},
		{
			name: "non-string key is stringified",
			args: []any{42, "answer"},
			want: map[string]any{"42": "answer"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, fields(testCase.args))
		})
	}
}
