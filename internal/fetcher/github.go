// Package fetcher retrieves skill READMEs and raw registry files from
// GitHub.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched documents.
const maxResponseBodyBytes = 2 * 1024 * 1024 // 2 MB

// rawMediaType asks the content API for the raw file body instead of the
// JSON envelope.
const rawMediaType = "application/vnd.github.raw+json"

// Fetcher errors.
var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrRateLimited is returned when GitHub rejects the request for quota.
	ErrRateLimited = errors.New("rate limited by GitHub")
)

// Client fetches documents through the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	log        logger.Interface
}

// NewClient creates a GitHub fetch client. An empty token is allowed but
// logged, since unauthenticated requests hit the public rate limit.
func NewClient(cfg config.GitHubConfig, log logger.Interface) *Client {
	if log == nil {
		log = logger.NewNoOp()
	}

	if cfg.Token == "" {
		log.Warn("No GitHub token configured, requests may exceed the rate limit")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		log:        log,
	}
}

// FetchReadme returns the preferred README of the repository as raw text.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, repo)

	body, err := c.get(ctx, endpoint, rawMediaType)
	if err != nil {
		return "", fmt.Errorf("fetch readme %s/%s: %w", owner, repo, err)
	}

	return body, nil
}

// FetchRaw fetches an arbitrary raw-content URL, used for registry
// listings.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL, "")
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	return body, nil
}

// get performs a single GET request and maps HTTP failures onto the
// fetcher's error kinds.
func (c *Client) get(ctx context.Context, endpoint, accept string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		return "", fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return string(body), nil
}
