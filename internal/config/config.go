// Package config provides centralized configuration management for the
// application. All configuration comes from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Tracker backend names accepted in QUILL_TRACKER.
const (
	TrackerJira   = "jira"
	TrackerGitHub = "github"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira   JiraConfig
	GitHub GitHubConfig
	OpenAI OpenAIConfig

	// Tracker selects the backend used to file issues: "jira" (default)
	// or "github".
	Tracker string

	// DefaultProject overrides the built-in default project used when the
	// user never names one. Empty means use the vocabulary default.
	DefaultProject string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Domain string
	Token  string

	// Repository is where issues are filed when the GitHub tracker is
	// selected, in "owner/repo" form.
	Repository string
}

// OpenAIConfig holds configuration for the language-model extractor.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.repository", "GITHUB_REPOSITORY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "OPENAI_MODEL")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("tracker", "QUILL_TRACKER")
	v.BindEnv("default_project", "QUILL_DEFAULT_PROJECT")

	config := &Config{
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
		GitHub: GitHubConfig{
			Domain:     v.GetString("github.domain"),
			Token:      v.GetString("github.token"),
			Repository: v.GetString("github.repository"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("openai.api_key"),
			Model:   v.GetString("openai.model"),
			BaseURL: v.GetString("openai.base_url"),
		},
		Tracker:        strings.ToLower(v.GetString("tracker")),
		DefaultProject: v.GetString("default_project"),
	}

	if config.Tracker == "" {
		config.Tracker = TrackerJira
	}
	if config.GitHub.Domain == "" {
		config.GitHub.Domain = "github.com"
	}

	if config.Tracker != TrackerJira && config.Tracker != TrackerGitHub {
		return nil, fmt.Errorf("unsupported tracker %q, expected %q or %q",
			config.Tracker, TrackerJira, TrackerGitHub)
	}

	return config, nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateGitHubConfig validates GitHub-specific configuration.
func ValidateGitHubConfig(config *Config) error {
	var missingVars []string

	if config.GitHub.Token == "" {
		missingVars = append(missingVars, "GITHUB_TOKEN")
	}
	if config.GitHub.Repository == "" {
		missingVars = append(missingVars, "GITHUB_REPOSITORY")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateOpenAIConfig validates language-model extractor configuration.
// The extractor is optional: when unconfigured, the conversation falls back
// to asking for every field, so callers treat this error as advisory.
func ValidateOpenAIConfig(config *Config) error {
	if config.OpenAI.APIKey == "" {
		return fmt.Errorf("missing required environment variables: [OPENAI_API_KEY]")
	}
	return nil
}
