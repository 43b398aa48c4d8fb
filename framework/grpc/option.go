package grpcauth

import "github.com/prepbettr/unifiedauth/core"

// Option configures the Interceptor.
type Option func(*Interceptor)

// WithTokenExtractor replaces how the credential is read from the
// incoming context.
//
// Default: MetadataTokenExtractor.
func WithTokenExtractor(extractor TokenExtractor) Option {
	return func(i *Interceptor) {
		i.tokenExtractor = extractor
	}
}

// WithRequiredRoles grants access when the user holds any one of the
// given roles.
func WithRequiredRoles(roles ...string) Option {
	return func(i *Interceptor) {
		i.requiredRoles = roles
	}
}

// WithSkipAuth bypasses verification entirely, passing requests through
// without a user.
func WithSkipAuth(skip bool) Option {
	return func(i *Interceptor) {
		i.skipAuth = skip
	}
}

// WithCustomValidator sets the optional final gate.
func WithCustomValidator(validator CustomValidator) Option {
	return func(i *Interceptor) {
		i.customValidator = validator
	}
}

// WithLogger sets an optional logger.
func WithLogger(logger core.Logger) Option {
	return func(i *Interceptor) {
		i.logger = logger
	}
}
