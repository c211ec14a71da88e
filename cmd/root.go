package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/water-vapor/gpt-oss/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gpt-oss",
	Short: "Stateful code execution tools for agent conversations",
	Long: `gpt-oss provides persistent, REPL-like code execution environments
(Python dialect, JavaScript, Tengo) and exposes them as conversation tools:
interactively, one-shot, or to an MCP client over stdio.

Variables defined in one execution remain visible to later executions within
the same session; every call returns a report labeled with its execution
number.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("gpt-oss %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
