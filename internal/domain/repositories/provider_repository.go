package repositories

import (
	"context"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
)

// ProviderRepository abstracts the repository listing endpoint of a Git hosting
// service (GitHub, Gitea). It fetches exactly one page per call and leaves
// decoding and continuation decisions to the caller.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// FetchPage requests one page of the account's repositories. A non-2xx answer
	// is returned as *entities.FetchError and a connection failure wraps
	// entities.ErrTransport.
	FetchPage(ctx context.Context, account string, page int) (*entities.PageResponse, error)
}
