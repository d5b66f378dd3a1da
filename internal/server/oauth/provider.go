// Package oauth holds the external identity providers used by the session
// surface's authorization-code sign-in.
package oauth

import (
	"context"
	"sort"
)

// Identity is what a provider vouches for after a successful code exchange.
type Identity struct {
	Provider   string
	Subject    string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
}

type Provider interface {
	Name() string
	// AuthCodeURL is the consent page the browser is redirected to.
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

// Registry looks providers up by name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(ps ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(ps))}
	for _, p := range ps {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (Provider, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
