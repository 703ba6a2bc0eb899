package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/repomirror/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/repomirror/internal/infrastructure/repositories/gitclone"
	ghRepo "github.com/rios0rios0/repomirror/internal/infrastructure/repositories/github"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(ghRepo.GitHubProviderName, ghRepo.NewGitHubProviderRepository)
		reg.Register(ghRepo.GiteaProviderName, ghRepo.NewGiteaProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register the clone capability
	if err := container.Provide(func() domainRepos.CloneRepository {
		return gitRepo.NewCloneRepository()
	}); err != nil {
		return err
	}

	return nil
}
