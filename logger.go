package unifiedauth

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/prepbettr/unifiedauth/core"
)

// NoopLogger discards all log output. Useful in tests.
type NoopLogger struct{}

func (l *NoopLogger) Debug(msg string, args ...any) {}
func (l *NoopLogger) Info(msg string, args ...any)  {}
func (l *NoopLogger) Warn(msg string, args ...any)  {}
func (l *NoopLogger) Error(msg string, args ...any) {}

// NewLogrusLogger adapts a logrus logger to the core logging interface.
func NewLogrusLogger(l logrus.FieldLogger) core.Logger {
	return &logrusAdapter{l: l}
}

type logrusAdapter struct{ l logrus.FieldLogger }

func (a *logrusAdapter) Debug(msg string, args ...any) { a.l.WithFields(fields(args)).Debug(msg) }
func (a *logrusAdapter) Info(msg string, args ...any)  { a.l.WithFields(fields(args)).Info(msg) }
func (a *logrusAdapter) Warn(msg string, args ...any)  { a.l.WithFields(fields(args)).Warn(msg) }
func (a *logrusAdapter) Error(msg string, args ...any) { a.l.WithFields(fields(args)).Error(msg) }

// NewZapLogger adapts a zap sugared logger to the core logging interface.
func NewZapLogger(l *zap.SugaredLogger) core.Logger {
	return &zapAdapter{l: l}
}

type zapAdapter struct{ l *zap.SugaredLogger }

func (a *zapAdapter) Debug(msg string, args ...any) { a.l.Debugw(msg, args...) }
func (a *zapAdapter) Info(msg string, args ...any)  { a.l.Infow(msg, args...) }
func (a *zapAdapter) Warn(msg string, args ...any)  { a.l.Warnw(msg, args...) }
func (a *zapAdapter) Error(msg string, args ...any) { a.l.Errorw(msg, args...) }

// NewZerologLogger adapts a zerolog logger to the core logging interface.
func NewZerologLogger(l zerolog.Logger) core.Logger {
	return &zerologAdapter{l: l}
}

type zerologAdapter struct{ l zerolog.Logger }

func (a *zerologAdapter) Debug(msg string, args ...any) { a.l.Debug().Fields(fields(args)).Msg(msg) }
func (a *zerologAdapter) Info(msg string, args ...any)  { a.l.Info().Fields(fields(args)).Msg(msg) }
func (a *zerologAdapter) Warn(msg string, args ...any)  { a.l.Warn().Fields(fields(args)).Msg(msg) }
func (a *zerologAdapter) Error(msg string, args ...any) { a.l.Error().Fields(fields(args)).Msg(msg) }

// fields converts slog-style alternating key/value args into a field map.
// A trailing valueless key is kept with an empty value rather than
// dropped.
func fields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}

	m := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 < len(args) {
			m[key] = args[i+1]
		} else {
			m[key] = ""
		}
	}
	return m
}
