package core

import (
	"errors"

	"github.com/prepbettr/unifiedauth/provider"
)

// Option configures the Engine. Options return an error for invalid
// configuration so construction fails fast.
type Option func(*Engine) error

// Sentinel errors for configuration validation.
var (
	ErrNoProviders        = errors.New("at least one identity provider is required (use WithProvider)")
	ErrProviderFactoryNil = errors.New("provider factory cannot be nil")
	ErrLoggerNil          = errors.New("logger cannot be nil")
	ErrTracerNil          = errors.New("tracer cannot be nil")
	ErrMonitorNil         = errors.New("monitor cannot be nil")
)

// WithProvider appends an identity-provider factory. Registration order
// is verification priority: the first registered provider is tried first.
func WithProvider(factory provider.Factory) Option {
	return func(e *Engine) error {
		if factory == nil {
			return ErrProviderFactoryNil
		}
		e.factories = append(e.factories, factory)
		return nil
	}
}

// WithLogger sets an optional logger used throughout the verification
// flow. The interface is compatible with log/slog.Logger.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return ErrLoggerNil
		}
		e.logger = logger
		return nil
	}
}

// WithTracer sets the tracer wrapping each verification in a span.
//
// Default: NoopTracer.
func WithTracer(tracer Tracer) Option {
	return func(e *Engine) error {
		if tracer == nil {
			return ErrTracerNil
		}
		e.tracer = tracer
		return nil
	}
}

// WithMonitor sets the performance monitor recording per-operation
// latency windows. Supply a shared instance when several components
// report into one monitor.
//
// Default: a fresh monitor owned by the engine.
func WithMonitor(monitor *PerformanceMonitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			return ErrMonitorNil
		}
		e.monitor = monitor
		return nil
	}
}
