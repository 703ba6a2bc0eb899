package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repomirror/internal/infrastructure/repositories"
)

// maxPages bounds an enumeration whose platform never stops advertising a next page.
const maxPages = 10000

// Enumerate is the interface for the enumerate command.
type Enumerate interface {
	Execute(ctx context.Context, opts EnumerateOptions) (entities.EnumerationResult, error)
}

// EnumerateOptions holds runtime options for a single enumeration.
type EnumerateOptions struct {
	ProviderName string
	BaseURL      string // Provider default when empty
	Account      string
	Token        string // Anonymous when empty
}

var errNotAnArray = errors.New("expected a JSON array of repositories")

// repositoryRecord holds the fields read from one element of a listing page.
type repositoryRecord struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// EnumerateCommand walks every page of an account's repository listing.
type EnumerateCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewEnumerateCommand creates a new EnumerateCommand with the given provider registry.
func NewEnumerateCommand(providerRegistry *infraRepos.ProviderRegistry) *EnumerateCommand {
	return &EnumerateCommand{providerRegistry: providerRegistry}
}

// Execute resolves the provider and returns every repository of the account in page order.
// Any failure aborts the enumeration; no partial result is returned.
func (it *EnumerateCommand) Execute(
	ctx context.Context,
	opts EnumerateOptions,
) (entities.EnumerationResult, error) {
	if opts.Account == "" {
		return nil, errors.New("account is required")
	}

	provider, err := it.providerRegistry.Get(opts.ProviderName, opts.BaseURL, opts.Token)
	if err != nil {
		return nil, err
	}

	logger.Infof("Discovering repositories of %q on %s...", opts.Account, provider.Name())

	refs, err := enumerate(ctx, provider, opts.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate repositories of %q: %w", opts.Account, err)
	}

	logger.Infof("Found %d repositories of %q", len(refs), opts.Account)
	return refs, nil
}

// enumerate fetches pages sequentially. An empty page ends the listing regardless of
// the Link header; otherwise the absence of a next-page signal ends it, even after a
// full page.
func enumerate(
	ctx context.Context,
	provider repositories.ProviderRepository,
	account string,
) (entities.EnumerationResult, error) {
	refs := entities.EnumerationResult{}

	for page := 1; page <= maxPages; page++ {
		resp, err := provider.FetchPage(ctx, account, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		pageRefs, err := decodePage(page, resp.Body)
		if err != nil {
			return nil, err
		}

		logger.Debugf("Page %d: %d repositories, next page advertised: %t",
			page, len(pageRefs), resp.HasNext())

		if len(pageRefs) == 0 {
			return refs, nil
		}
		refs = append(refs, pageRefs...)

		if !resp.HasNext() {
			return refs, nil
		}
	}

	return nil, fmt.Errorf("%w (%d pages)", entities.ErrPageLimit, maxPages)
}

// decodePage turns one listing body into refs. Every record must carry a name and a
// clone URL; the first violation fails the whole page.
func decodePage(page int, body []byte) ([]entities.RepositoryRef, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(body, &rawRecords); err != nil {
		return nil, &entities.MalformedRecordError{Page: page, Index: -1, Err: err}
	}
	if rawRecords == nil {
		return nil, &entities.MalformedRecordError{Page: page, Index: -1, Err: errNotAnArray}
	}

	refs := make([]entities.RepositoryRef, 0, len(rawRecords))
	for index, raw := range rawRecords {
		var record repositoryRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, &entities.MalformedRecordError{Page: page, Index: index, Err: err}
		}
		if record.Name == "" {
			return nil, &entities.MalformedRecordError{Page: page, Index: index, Field: "name"}
		}
		if record.HTMLURL == "" {
			return nil, &entities.MalformedRecordError{Page: page, Index: index, Field: "html_url"}
		}
		refs = append(refs, entities.RepositoryRef{Name: record.Name, CloneURL: record.HTMLURL})
	}

	return refs, nil
}
