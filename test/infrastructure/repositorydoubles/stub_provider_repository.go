//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/domain/repositories"
)

// StubProviderRepository implements repositories.ProviderRepository by replaying
// scripted pages. Pages are keyed by page number.
type StubProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- FetchPage ---
	Pages    map[int]*entities.PageResponse
	PageErrs map[int]error

	// spy: every (account, page) requested, in call order
	RequestedAccounts []string
	RequestedPages    []int
}

var _ repositories.ProviderRepository = (*StubProviderRepository)(nil)

func (p *StubProviderRepository) Name() string { return p.ProviderName }

func (p *StubProviderRepository) FetchPage(
	_ context.Context, account string, page int,
) (*entities.PageResponse, error) {
	p.RequestedAccounts = append(p.RequestedAccounts, account)
	p.RequestedPages = append(p.RequestedPages, page)

	if err, ok := p.PageErrs[page]; ok {
		return nil, err
	}
	if resp, ok := p.Pages[page]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("unexpected request for page %d", page)
}

// NewJSONPage builds a 200 answer with the given body and next-page hint.
func NewJSONPage(page int, body string, nextPage int) *entities.PageResponse {
	return &entities.PageResponse{
		Page:       page,
		StatusCode: 200,
		Body:       []byte(body),
		NextPage:   nextPage,
	}
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (d *DummyProviderRepository) Name() string { return "dummy" }

func (d *DummyProviderRepository) FetchPage(
	_ context.Context, _ string, page int,
) (*entities.PageResponse, error) {
	return NewJSONPage(page, "[]", 0), nil
}
