package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/logging"
)

// doctorCmd reports which subsystems are configured, masking credentials.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check which backends are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("tracker:         %s\n", cfg.Tracker)
		if cfg.DefaultProject != "" {
			fmt.Printf("default project: %s\n", cfg.DefaultProject)
		}

		report := func(name string, err error) {
			if err != nil {
				fmt.Printf("%-16s not configured (%v)\n", name+":", err)
				return
			}
			fmt.Printf("%-16s ok\n", name+":")
		}

		report("jira", config.ValidateJiraConfig(cfg))
		report("github", config.ValidateGitHubConfig(cfg))
		report("openai", config.ValidateOpenAIConfig(cfg))

		fmt.Printf("jira token:      %s\n", logging.MaskSensitive(cfg.Jira.Token))
		fmt.Printf("github token:    %s\n", logging.MaskSensitive(cfg.GitHub.Token))
		fmt.Printf("openai key:      %s\n", logging.MaskSensitive(cfg.OpenAI.APIKey))
		return nil
	},
}
