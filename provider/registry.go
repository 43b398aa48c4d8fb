package provider

import "fmt"

// Registry holds provider factories by name and resolves an ordered list
// from configuration. It performs no verification itself.
//
// Registering implementations up front and selecting by name replaces
// call-time capability probing: a configuration naming an unregistered
// provider fails fast at construction instead of at the first request.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name, replacing any previous entry.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown identity provider: %s", name)
	}
	return f, nil
}

// Resolve returns factories for the given names in order. It errors on
// an unknown name and when the resulting list would be empty.
func (r *Registry) Resolve(names []string) ([]Factory, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no identity providers configured")
	}

	factories := make([]Factory, 0, len(names))
	for _, name := range names {
		f, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		factories = append(factories, f)
	}
	return factories, nil
}

// Names returns the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
