package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repomirror/internal/domain/entities"
	"github.com/rios0rios0/repomirror/internal/domain/repositories"
)

const (
	GitHubProviderName = "github"
	GiteaProviderName  = "gitea"

	defaultGitHubBaseURL = "https://api.github.com/"
	userAgent            = "repomirror"
	acceptHeader         = "application/vnd.github+json, application/json"
	perPage              = 100
	giteaMaxLimit        = 50
	requestTimeout       = 30 * time.Second
)

// GitHubProviderRepository implements repositories.ProviderRepository for the
// `/users/{account}/repos` listing of GitHub and of API-compatible forges (Gitea).
type GitHubProviderRepository struct {
	name          string
	client        *gh.Client
	pageSizeParam string
	pageSize      int
}

// NewGitHubProviderRepository creates a GitHub provider. An empty baseURL targets
// api.github.com, anything else is treated as a GitHub Enterprise API root.
func NewGitHubProviderRepository(baseURL, token string) (repositories.ProviderRepository, error) {
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	client, err := newClient(baseURL, token)
	if err != nil {
		return nil, err
	}
	return &GitHubProviderRepository{
		name:          GitHubProviderName,
		client:        client,
		pageSizeParam: "per_page",
		pageSize:      perPage,
	}, nil
}

// NewGiteaProviderRepository creates a provider for a Gitea instance. The baseURL
// must point at its API root (e.g. https://gitea.example.com/api/v1/).
func NewGiteaProviderRepository(baseURL, token string) (repositories.ProviderRepository, error) {
	if baseURL == "" {
		return nil, errors.New("gitea requires a base URL (e.g. https://gitea.example.com/api/v1/)")
	}
	client, err := newClient(baseURL, token)
	if err != nil {
		return nil, err
	}
	return &GitHubProviderRepository{
		name:          GiteaProviderName,
		client:        client,
		pageSizeParam: "limit",
		pageSize:      giteaMaxLimit,
	}, nil
}

func newClient(baseURL, token string) (*gh.Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	client := gh.NewClient(&http.Client{Timeout: requestTimeout})
	if token != "" {
		client = client.WithAuthToken(token)
	}
	client.BaseURL = parsed
	client.UserAgent = userAgent
	return client, nil
}

func (p *GitHubProviderRepository) Name() string { return p.name }

// FetchPage issues a single GET for one page of the account's repositories.
func (p *GitHubProviderRepository) FetchPage(
	ctx context.Context,
	account string,
	page int,
) (*entities.PageResponse, error) {
	endpoint := fmt.Sprintf(
		"users/%s/repos?page=%d&%s=%d",
		url.PathEscape(account), page, p.pageSizeParam, p.pageSize,
	)
	req, err := p.client.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	logger.Debugf("GET %s", req.URL.Redacted())

	resp, err := p.client.BareDo(ctx, req)
	if err != nil {
		if resp != nil && resp.Response != nil && !isSuccess(resp.StatusCode) {
			return nil, newFetchError(resp.Response, err)
		}
		return nil, fmt.Errorf("%w: %w", entities.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", entities.ErrTransport, err)
	}

	return &entities.PageResponse{
		Page:       page,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		NextPage:   resp.NextPage,
	}, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// newFetchError keeps the raw body of the failed answer. go-github re-populates the
// body after decoding its ErrorResponse, so it can still be read here.
func newFetchError(resp *http.Response, cause error) *entities.FetchError {
	body := ""
	if resp.Body != nil {
		defer resp.Body.Close()
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			body = strings.TrimSpace(string(data))
		}
	}
	if body == "" {
		var errResp *gh.ErrorResponse
		if errors.As(cause, &errResp) {
			body = errResp.Message
		}
	}
	return &entities.FetchError{StatusCode: resp.StatusCode, Body: body}
}
