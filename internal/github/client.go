// Package github fetches issue listings from the GitHub REST v3 API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/topictracker/pace/internal/models"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// listPageSize is the fixed page size of the single-page listing.
const listPageSize = 100

// Config carries the settings for one tracker client.
type Config struct {
	// APIURL is the API base URL. Empty means DefaultAPIURL.
	APIURL string
	// Token is the access token. Empty means unauthenticated requests.
	Token string
	// Repository is the "owner/name" slug to list issues from.
	Repository string
}

// Client lists issues for a configured repository.
type Client interface {
	// ListIssues returns one page of issues in every state, pull requests
	// included, in API delivery order.
	ListIssues(ctx context.Context) ([]models.Issue, error)
	// Repository returns the configured "owner/name" slug.
	Repository() string
}

// HTTPClient implements Client against the GitHub REST v3 API.
type HTTPClient struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a client for cfg. The underlying http.Client carries no
// timeout: each run performs exactly one fetch which either completes or
// fails, and a failure aborts the run.
func NewClient(cfg Config) *HTTPClient {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

func (c *HTTPClient) Repository() string { return c.cfg.Repository }

// ListIssues performs a single GET against the issues endpoint with
// state=all and a fixed page size. Results beyond the first page are not
// fetched and there is no retry; any failure surfaces as an error.
func (c *HTTPClient) ListIssues(ctx context.Context) ([]models.Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/issues?state=all&per_page=%d", c.cfg.APIURL, c.cfg.Repository, listPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("github: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "token "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: list issues: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: list issues for %s (status %d): %s",
			c.cfg.Repository, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var issues []models.Issue
	if err := json.Unmarshal(body, &issues); err != nil {
		return nil, fmt.Errorf("github: unmarshal issues: %w", err)
	}
	return issues, nil
}
