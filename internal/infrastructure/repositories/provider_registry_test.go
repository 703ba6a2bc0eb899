//go:build unit

package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainRepos "github.com/rios0rios0/repomirror/internal/domain/repositories"
	"github.com/rios0rios0/repomirror/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/repomirror/test/infrastructure/repositorydoubles"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a provider by name", func(t *testing.T) {
		t.Parallel()

		// given
		var gotBaseURL, gotToken string
		reg := repositories.NewProviderRegistry()
		reg.Register("test-provider", func(baseURL, token string) (domainRepos.ProviderRepository, error) {
			gotBaseURL, gotToken = baseURL, token
			return &doubles.StubProviderRepository{ProviderName: "test-provider"}, nil
		})

		// when
		prov, err := reg.Get("test-provider", "https://example.com/api/", "fake-token")

		// then
		require.NoError(t, err)
		assert.Equal(t, "test-provider", prov.Name())
		assert.Equal(t, "https://example.com/api/", gotBaseURL)
		assert.Equal(t, "fake-token", gotToken)
	})

	t.Run("should return error for unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		reg.Register("github", func(_, _ string) (domainRepos.ProviderRepository, error) {
			return &doubles.DummyProviderRepository{}, nil
		})

		// when
		prov, err := reg.Get("nonexistent", "", "token")

		// then
		require.Error(t, err)
		assert.Nil(t, prov)
		assert.Contains(t, err.Error(), "unknown provider type")
		assert.Contains(t, err.Error(), "github")
	})

	t.Run("should wrap factory errors", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("bad base URL")
		reg := repositories.NewProviderRegistry()
		reg.Register("broken", func(_, _ string) (domainRepos.ProviderRepository, error) {
			return nil, cause
		})

		// when
		prov, err := reg.Get("broken", "::", "")

		// then
		require.ErrorIs(t, err, cause)
		assert.Nil(t, prov)
	})

	t.Run("should list registered provider names sorted", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		factory := func(_, _ string) (domainRepos.ProviderRepository, error) {
			return &doubles.DummyProviderRepository{}, nil
		}
		reg.Register("gitea", factory)
		reg.Register("github", factory)

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"gitea", "github"}, names)
	})
}
