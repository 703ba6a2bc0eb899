package repositories

import "context"

// CloneRepository materializes a full local copy of a remote repository.
type CloneRepository interface {
	// Clone copies url into destination, which must not exist yet. An empty token
	// clones anonymously.
	Clone(ctx context.Context, url, destination, token string) error
}
