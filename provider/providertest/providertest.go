// Package providertest provides a configurable in-memory identity
// provider for testing engine and adapter behavior without a live
// backend.
package providertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/prepbettr/unifiedauth/provider"
)

// Provider is a fake IdentityProvider. Configure accepted credentials
// with Accept/AcceptCookie, or force failures with VerifyErr/CookieErr/
// ProbeErr. All methods are safe for concurrent use and count their
// calls.
type Provider struct {
	ProviderName string
	ProviderKind provider.Kind

	// VerifyErr, when set, is returned from every VerifyIDToken call.
	VerifyErr error
	// CookieErr, when set, is returned from every VerifySessionCookie
	// call.
	CookieErr error
	// ProbeErr, when set, is returned from every Probe call.
	ProbeErr error

	mu          sync.Mutex
	tokens      map[string]*provider.Token
	cookies     map[string]*provider.Token
	verifyCalls int
	cookieCalls int
	probeCalls  int
}

// New constructs a fake provider.
func New(name string, kind provider.Kind) *Provider {
	return &Provider{
		ProviderName: name,
		ProviderKind: kind,
		tokens:       make(map[string]*provider.Token),
		cookies:      make(map[string]*provider.Token),
	}
}

// Accept registers credential as a valid ID token resolving to tok.
func (p *Provider) Accept(credential string, tok *provider.Token) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[credential] = tok
	return p
}

// AcceptCookie registers credential as a valid session cookie resolving
// to tok.
func (p *Provider) AcceptCookie(credential string, tok *provider.Token) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cookies[credential] = tok
	return p
}

// Name implements provider.IdentityProvider.
func (p *Provider) Name() string { return p.ProviderName }

// Kind implements provider.IdentityProvider.
func (p *Provider) Kind() provider.Kind { return p.ProviderKind }

// VerifyIDToken implements provider.IdentityProvider.
func (p *Provider) VerifyIDToken(ctx context.Context, token string) (*provider.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verifyCalls++

	if p.VerifyErr != nil {
		return nil, p.VerifyErr
	}
	if tok, ok := p.tokens[token]; ok {
		return tok, nil
	}
	return nil, fmt.Errorf("%w: unknown token", provider.ErrTokenInvalid)
}

// VerifySessionCookie implements provider.IdentityProvider.
func (p *Provider) VerifySessionCookie(ctx context.Context, cookie string) (*provider.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cookieCalls++

	if p.CookieErr != nil {
		return nil, p.CookieErr
	}
	if tok, ok := p.cookies[cookie]; ok {
		return tok, nil
	}
	return nil, fmt.Errorf("%w: unknown cookie", provider.ErrTokenInvalid)
}

// Probe implements provider.IdentityProvider.
func (p *Provider) Probe(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probeCalls++
	return p.ProbeErr
}

// VerifyCalls returns the number of VerifyIDToken calls.
func (p *Provider) VerifyCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.verifyCalls
}

// CookieCalls returns the number of VerifySessionCookie calls.
func (p *Provider) CookieCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cookieCalls
}

// ProbeCalls returns the number of Probe calls.
func (p *Provider) ProbeCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.probeCalls
}

// Factory returns a factory handing out this provider and counting
// constructions through calls.
type Factory struct {
	mu       sync.Mutex
	calls    int
	provider provider.IdentityProvider
	err      error
}

// NewFactory wraps p in a counting factory.
func NewFactory(p provider.IdentityProvider) *Factory {
	return &Factory{provider: p}
}

// NewFailingFactory returns a factory that always fails with err.
func NewFailingFactory(err error) *Factory {
	return &Factory{err: err}
}

// Build is the provider.Factory function.
func (f *Factory) Build(ctx context.Context) (provider.IdentityProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

// Calls returns how many times the factory ran.
func (f *Factory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
