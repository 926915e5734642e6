// Package cmd provides the command-line interface for the quill assistant.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill files tracker issues through a short conversation",
	Long: `Quill is a conversational assistant that collects a complete issue
record through dialogue and files it in your tracker.

Tell it what went wrong in plain language. It extracts what it can from
your first message, asks short follow-up questions for anything missing,
shows you the full record, and files it once you confirm.

Backends are selected with QUILL_TRACKER: "jira" (default) files JIRA
issues, "github" files GitHub issues in GITHUB_REPOSITORY.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(doctorCmd)
}
