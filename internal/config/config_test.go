package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv sets an environment variable for the duration of the test.
func setEnv(t *testing.T, key, value string) {
	t.Helper()
	orig := os.Getenv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() { os.Setenv(key, orig) })
}

func TestLoadConfigDefaults(t *testing.T) {
	setEnv(t, "QUILL_TRACKER", "")
	setEnv(t, "GITHUB_DOMAIN", "")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, TrackerJira, config.Tracker)
	assert.Equal(t, "github.com", config.GitHub.Domain)
}

func TestLoadConfigTrackerSelection(t *testing.T) {
	tests := []struct {
		name    string
		tracker string
		want    string
		wantErr bool
	}{
		{name: "Jira", tracker: "jira", want: TrackerJira},
		{name: "GitHub", tracker: "github", want: TrackerGitHub},
		{name: "Case insensitive", tracker: "GitHub", want: TrackerGitHub},
		{name: "Unknown tracker", tracker: "trello", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, "QUILL_TRACKER", tt.tracker)

			config, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, config)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, config.Tracker)
			}
		})
	}
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	setEnv(t, "QUILL_TRACKER", "")
	setEnv(t, "JIRA_URL", "https://example.atlassian.net")
	setEnv(t, "JIRA_USERNAME", "bot@example.com")
	setEnv(t, "JIRA_TOKEN", "secret")
	setEnv(t, "OPENAI_API_KEY", "sk-test")
	setEnv(t, "OPENAI_MODEL", "gpt-4o-mini")
	setEnv(t, "QUILL_DEFAULT_PROJECT", "demo")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://example.atlassian.net", config.Jira.URL)
	assert.Equal(t, "bot@example.com", config.Jira.Username)
	assert.Equal(t, "secret", config.Jira.Token)
	assert.Equal(t, "sk-test", config.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", config.OpenAI.Model)
	assert.Equal(t, "demo", config.DefaultProject)
}

func TestValidateJiraConfig(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		username string
		token    string
		wantErr  bool
	}{
		{name: "All fields present", url: "https://jira.example.com", username: "user", token: "tok"},
		{name: "Missing URL", username: "user", token: "tok", wantErr: true},
		{name: "Missing username", url: "https://jira.example.com", token: "tok", wantErr: true},
		{name: "Missing token", url: "https://jira.example.com", username: "user", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				Jira: JiraConfig{URL: tt.url, Username: tt.username, Token: tt.token},
			}

			err := ValidateJiraConfig(config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGitHubConfig(t *testing.T) {
	config := &Config{GitHub: GitHubConfig{Token: "tok", Repository: "owner/repo"}}
	assert.NoError(t, ValidateGitHubConfig(config))

	config = &Config{GitHub: GitHubConfig{Token: "tok"}}
	err := ValidateGitHubConfig(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_REPOSITORY")
}

func TestValidateOpenAIConfig(t *testing.T) {
	assert.NoError(t, ValidateOpenAIConfig(&Config{OpenAI: OpenAIConfig{APIKey: "sk-test"}}))
	assert.Error(t, ValidateOpenAIConfig(&Config{}))
}
