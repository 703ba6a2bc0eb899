package repositories

import (
	"fmt"
	"slices"
	"strings"

	domainRepos "github.com/rios0rios0/repomirror/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a ProviderRepository for an
// API base URL (provider default when empty) and an auth token (anonymous when empty).
type ProviderFactory func(baseURL, token string) (domainRepos.ProviderRepository, error)

// ProviderRegistry manages all registered Git provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(name, baseURL, token string) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf(
			"unknown provider type: %q (available: %s)",
			name, strings.Join(r.Names(), ", "),
		)
	}
	provider, err := factory(baseURL, token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", name, err)
	}
	return provider, nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
