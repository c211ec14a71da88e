package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/water-vapor/gpt-oss/internal/repl"
)

var execLanguage string
var execCode string

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Execute one code fragment and print its report",
	Long: `Execute a single code fragment against a fresh environment and print
the execution report. The fragment comes from the -c flag, a file argument,
or stdin, in that order of preference.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := readFragment(cmd, args)
		if err != nil {
			return err
		}

		env, err := repl.NewExecutor(execLanguage, repl.DefaultConfig())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), env.Execute(code))
		return nil
	},
}

// readFragment resolves the code source: the -c flag, a file argument, or
// stdin.
func readFragment(cmd *cobra.Command, args []string) (string, error) {
	if execCode != "" {
		return execCode, nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read code file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read code from stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	// Language flag with env var fallback
	defaultLanguage := "python"
	if envLanguage := os.Getenv("GPT_OSS_LANGUAGE"); envLanguage != "" {
		defaultLanguage = envLanguage
	}
	execCmd.Flags().StringVarP(&execLanguage, "language", "l", defaultLanguage, "Language to execute (python, javascript, tengo)")
	execCmd.Flags().StringVarP(&execCode, "code", "c", "", "Code fragment to execute")

	rootCmd.AddCommand(execCmd)
}
