// Package jira provides the JIRA tracker backend: it files finished issue
// records and runs the advisory duplicate search.
package jira

import (
	"context"
	"fmt"
	"strings"

	jira "github.com/andygrunwald/go-jira"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/vocab"
	"github.com/quillhq/quill/pkg/models"
)

// maxSimilarResults bounds the advisory duplicate search.
const maxSimilarResults = 5

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client
}

// NewClient creates a new JIRA client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira client initialized",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return &Client{client: client}, nil
}

// CreateTicket files the record as a JIRA issue and returns the new key
// (e.g., "ENG-123").
func (c *Client) CreateTicket(ctx context.Context, record models.IssueRecord) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("jira client not initialized")
	}

	projectKey, ok := vocab.ProjectKey(record.Project)
	if !ok {
		return "", fmt.Errorf("no jira project key for project %q", record.Project)
	}

	issue := &jira.Issue{
		Fields: &jira.IssueFields{
			Project:     jira.Project{Key: projectKey},
			Summary:     record.Title,
			Description: record.Description,
			Type:        jira.IssueType{Name: record.Type},
			Priority:    &jira.Priority{Name: record.Priority},
		},
	}

	created, resp, err := c.client.Issue.CreateWithContext(ctx, issue)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return "", fmt.Errorf("failed to create jira issue: %v (status: %d)", err, status)
	}

	return created.Key, nil
}

// SearchSimilar returns up to maxSimilarResults issues whose summary
// resembles the given title. Results are advisory only.
func (c *Client) SearchSimilar(ctx context.Context, title string) ([]models.SimilarIssue, error) {
	if c.client == nil {
		return nil, fmt.Errorf("jira client not initialized")
	}

	jql := fmt.Sprintf(`summary ~ "%s" ORDER BY created DESC`, escapeJQL(title))
	issues, _, err := c.client.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{
		MaxResults: maxSimilarResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search jira issues: %w", err)
	}

	similar := make([]models.SimilarIssue, 0, len(issues))
	for _, issue := range issues {
		similar = append(similar, models.SimilarIssue{
			ID:      issue.Key,
			Summary: issue.Fields.Summary,
		})
	}
	return similar, nil
}

// escapeJQL strips characters that would break out of a quoted JQL string.
func escapeJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, " ")
	return strings.ReplaceAll(s, `"`, " ")
}
