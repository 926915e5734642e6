// Package main is the entry point for the quill assistant.
package main

import (
	"fmt"
	"os"

	"github.com/quillhq/quill/cmd"
	"github.com/quillhq/quill/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
