package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/conversation"
	"github.com/quillhq/quill/internal/extract"
	"github.com/quillhq/quill/internal/github"
	"github.com/quillhq/quill/internal/jira"
	"github.com/quillhq/quill/internal/logging"
)

// chatCmd runs the interactive conversation loop on the terminal.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session for filing issues",
	Long: `Start an interactive session for filing issues.

Type what you want to file, e.g.:

  > create a bug in engineering about login failing

Quill asks follow-up questions for anything it could not extract, shows
the full record, and files it after you confirm. Say "cancel" to abandon
an issue, "exit" to quit.

When OPENAI_API_KEY is not set, extraction from the first message is
skipped and every field is collected through follow-up questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		tracker, err := newTracker(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize %s tracker: %w", cfg.Tracker, err)
		}

		var extractor conversation.Extractor
		if err := config.ValidateOpenAIConfig(cfg); err != nil {
			logging.Info("language model not configured, every field will be asked for", "reason", err)
		} else {
			extractor = extract.NewLLMExtractor(cfg.OpenAI)
		}

		engine := conversation.NewEngine(extractor, tracker, cfg.DefaultProject)
		state := conversation.NewSlotState()

		fmt.Println(`Hi! Tell me what to file, e.g. "create a bug about ...". Type "exit" to quit.`)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}

			render(engine.HandleUtterance(cmd.Context(), state, line))
		}
	},
}

// newTracker builds the backend selected by configuration.
func newTracker(cfg *config.Config) (conversation.Tracker, error) {
	if cfg.Tracker == config.TrackerGitHub {
		return github.NewClient(cfg)
	}
	return jira.NewClient(cfg)
}

// render prints one turn result for the user.
func render(result conversation.TurnResult) {
	switch result.Kind {
	case conversation.ResultRegularChat:
		fmt.Println(`I only file issues. Try something like "create a bug about login failing".`)

	case conversation.ResultAskQuestion:
		fmt.Println(result.Question)

	case conversation.ResultConfirm:
		r := result.Record
		fmt.Println("Here's what I'll file:")
		fmt.Printf("  Project:     %s\n", r.Project)
		fmt.Printf("  Type:        %s\n", r.Type)
		fmt.Printf("  Priority:    %s\n", r.Priority)
		fmt.Printf("  Title:       %s\n", r.Title)
		if r.Description == "" {
			fmt.Println("  Description: (none)")
		} else {
			fmt.Printf("  Description: %s\n", r.Description)
		}
		if len(result.Similar) > 0 {
			fmt.Println("Possibly related:")
			for _, s := range result.Similar {
				fmt.Printf("  %s %s\n", s.ID, s.Summary)
			}
		}
		fmt.Println("Create this issue? (yes/no)")

	case conversation.ResultCreated:
		fmt.Printf("Created %s.\n", result.CreatedID)

	case conversation.ResultCancelled:
		fmt.Println("Okay, cancelled.")

	case conversation.ResultCreateFailed:
		fmt.Printf("Couldn't create the issue: %s\n", result.Error)
	}
}
