//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// RepositoryRefBuilder helps create test repository refs with a fluent interface.
type RepositoryRefBuilder struct {
	*testkit.BaseBuilder
	owner    string
	name     string
	cloneURL string
}

// NewRepositoryRefBuilder creates a new ref builder with sensible defaults.
func NewRepositoryRefBuilder() *RepositoryRefBuilder {
	return &RepositoryRefBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		owner:       "octo",
		name:        "test-repo",
	}
}

// WithOwner sets the account used to derive the default clone URL.
func (b *RepositoryRefBuilder) WithOwner(owner string) *RepositoryRefBuilder {
	b.owner = owner
	return b
}

// WithName sets the repository name.
func (b *RepositoryRefBuilder) WithName(name string) *RepositoryRefBuilder {
	b.name = name
	return b
}

// WithCloneURL overrides the derived clone URL.
func (b *RepositoryRefBuilder) WithCloneURL(url string) *RepositoryRefBuilder {
	b.cloneURL = url
	return b
}

// Build creates the ref (satisfies testkit.Builder interface).
func (b *RepositoryRefBuilder) Build() interface{} {
	return b.BuildRef()
}

// BuildRef creates the ref with its concrete type.
func (b *RepositoryRefBuilder) BuildRef() entities.RepositoryRef {
	cloneURL := b.cloneURL
	if cloneURL == "" {
		cloneURL = fmt.Sprintf("https://github.com/%s/%s", b.owner, b.name)
	}
	return entities.RepositoryRef{Name: b.name, CloneURL: cloneURL}
}

// BuildRefs creates one ref per name, sharing the builder's owner.
func (b *RepositoryRefBuilder) BuildRefs(names ...string) entities.EnumerationResult {
	refs := make(entities.EnumerationResult, 0, len(names))
	for _, name := range names {
		refs = append(refs, b.Clone().(*RepositoryRefBuilder).WithName(name).WithCloneURL("").BuildRef())
	}
	return refs
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryRefBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.owner = "octo"
	b.name = "test-repo"
	b.cloneURL = ""
	return b
}

// Clone creates a deep copy of the RepositoryRefBuilder.
func (b *RepositoryRefBuilder) Clone() testkit.Builder {
	return &RepositoryRefBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		owner:       b.owner,
		name:        b.name,
		cloneURL:    b.cloneURL,
	}
}
