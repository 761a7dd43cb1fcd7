// This file implements the provider registry: a fixed, order-preserving
// mapping from service tag to provider instance, populated once at process
// start and treated as immutable thereafter.
package music

import "fmt"

// Registry holds the set of known providers in registration order. Detection
// is deterministic: the first provider whose pattern set matches a URL wins.
type Registry struct {
	order     []Service
	providers map[Service]Provider
}

// NewRegistry builds a registry from the given providers, preserving argument
// order for detection. It is constructed once at startup; there is no runtime
// mutation.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[Service]Provider, len(providers))}
	for _, p := range providers {
		tag := p.Service()
		if _, dup := r.providers[tag]; dup {
			continue
		}
		r.order = append(r.order, tag)
		r.providers[tag] = p
	}
	return r
}

// Detect returns the first provider able to extract a track identifier from
// the URL, along with the identifier itself. ok is false when no provider
// matches.
func (r *Registry) Detect(url string) (p Provider, id string, ok bool) {
	for _, tag := range r.order {
		p := r.providers[tag]
		if id, ok := p.ExtractID(url); ok {
			return p, id, true
		}
	}
	return nil, "", false
}

// Get returns the provider registered for the tag. Unknown tags yield a
// ConfigError; with the closed Service enumeration this is unreachable in
// practice but kept for symmetry with detection.
func (r *Registry) Get(tag Service) (Provider, error) {
	p, ok := r.providers[tag]
	if !ok {
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported music service: %s", tag)}
	}
	return p, nil
}

// All returns the registered providers in registration order.
func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, tag := range r.order {
		out = append(out, r.providers[tag])
	}
	return out
}
