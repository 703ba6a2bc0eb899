package gitclone

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repomirror/internal/domain/repositories"
)

// tokenUsername is accepted by GitHub and Gitea for token-based HTTPS basic auth.
const tokenUsername = "x-access-token"

// CloneRepository implements repositories.CloneRepository with go-git, without
// requiring a git binary on the host.
type CloneRepository struct{}

// NewCloneRepository creates a go-git backed cloner.
func NewCloneRepository() *CloneRepository {
	return &CloneRepository{}
}

var _ repositories.CloneRepository = (*CloneRepository)(nil)

// Clone performs a full (non-shallow) clone of url into destination.
// go-git removes the destination again when the clone fails.
func (it *CloneRepository) Clone(ctx context.Context, url, destination, token string) error {
	opts := &git.CloneOptions{URL: url}
	if token != "" {
		opts.Auth = &githttp.BasicAuth{
			Username: tokenUsername,
			Password: token,
		}
	}

	logger.Debugf("Cloning %s into %s", url, destination)
	if _, err := git.PlainCloneContext(ctx, destination, false, opts); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}
