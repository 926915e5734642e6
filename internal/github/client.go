// Package github provides the GitHub tracker backend: it files finished
// issue records as GitHub issues when QUILL_TRACKER=github.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/pkg/models"
)

// maxSimilarResults bounds the advisory duplicate search.
const maxSimilarResults = 5

// Client encapsulates the GitHub API client and the target repository.
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a new GitHub client from configuration. The repository
// must be in "owner/repo" form. Enterprise domains get the /api/v3 base URL
// the same way the public API gets api.github.com.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateGitHubConfig(cfg); err != nil {
		return nil, err
	}

	parts := strings.Split(cfg.GitHub.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository format: %s, expected format: owner/repo", cfg.GitHub.Repository)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if cfg.GitHub.Domain != "github.com" {
		apiURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", cfg.GitHub.Domain))
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = apiURL
		client.UploadURL = apiURL
	}

	logging.Debug("github client initialized",
		"domain", cfg.GitHub.Domain,
		"repository", cfg.GitHub.Repository,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	return &Client{client: client, owner: parts[0], repo: parts[1]}, nil
}

// CreateTicket files the record as a GitHub issue and returns its number
// as "#N". Type and priority become labels; the project lands in the body
// footer, since GitHub issues have no project field of their own.
func (c *Client) CreateTicket(ctx context.Context, record models.IssueRecord) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("github client not initialized")
	}

	body := record.Description
	if body != "" {
		body += "\n\n"
	}
	body += fmt.Sprintf("----\nProject: %s | Priority: %s", record.Project, record.Priority)

	labels := Labels(record)
	req := &github.IssueRequest{
		Title:  github.String(record.Title),
		Body:   github.String(body),
		Labels: &labels,
	}

	issue, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return "", fmt.Errorf("failed to create github issue: %w", err)
	}

	return fmt.Sprintf("#%d", issue.GetNumber()), nil
}

// Labels derives the issue labels from the record's type and priority,
// e.g. ["type:bug", "priority:high"].
func Labels(record models.IssueRecord) []string {
	return []string{
		"type:" + strings.ToLower(record.Type),
		"priority:" + strings.ToLower(record.Priority),
	}
}

// SearchSimilar returns up to maxSimilarResults open issues in the target
// repository whose text matches the given title. Results are advisory only.
func (c *Client) SearchSimilar(ctx context.Context, title string) ([]models.SimilarIssue, error) {
	if c.client == nil {
		return nil, fmt.Errorf("github client not initialized")
	}

	query := fmt.Sprintf("%s repo:%s/%s is:issue is:open", title, c.owner, c.repo)
	result, _, err := c.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: maxSimilarResults},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search github issues: %w", err)
	}

	similar := make([]models.SimilarIssue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		similar = append(similar, models.SimilarIssue{
			ID:      fmt.Sprintf("#%d", issue.GetNumber()),
			Summary: issue.GetTitle(),
		})
	}
	return similar, nil
}
