package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/water-vapor/gpt-oss/internal/repl"
)

var replLanguage string
var replMaxOutput int

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run an interactive session against a persistent environment",
	Long: `Run an interactive read-eval-print session on stdin. State persists
across inputs for the lifetime of the session; each input returns a report
labeled with its execution number. ":reset" clears the environment's
bindings, ctrl-d exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := repl.NewExecutor(replLanguage, replConfig(replMaxOutput))
		if err != nil {
			return err
		}

		sessionID := uuid.New().String()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, formatBanner(env.Language(), sessionID))

		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			fmt.Fprint(out, promptStyle.Render(">>> "))
			if !scanner.Scan() {
				fmt.Fprintln(out)
				break
			}
			line := scanner.Text()
			if line == ":reset" {
				env.Reset()
				fmt.Fprintln(out, dimStyle.Render("environment reset"))
				continue
			}
			fmt.Fprintln(out, env.Execute(line))
		}
		return scanner.Err()
	},
}

// replConfig builds the executor configuration from the max-output flag.
func replConfig(maxOutput int) repl.Config {
	config := repl.DefaultConfig()
	config.MaxOutputChars = maxOutput
	return config
}

func init() {
	// Language flag with env var fallback
	defaultLanguage := "python"
	if envLanguage := os.Getenv("GPT_OSS_LANGUAGE"); envLanguage != "" {
		defaultLanguage = envLanguage
	}
	replCmd.Flags().StringVarP(&replLanguage, "language", "l", defaultLanguage, "Language to execute (python, javascript, tengo)")

	// Max output flag with env var fallback
	defaultMaxOutput := repl.DefaultConfig().MaxOutputChars
	if envMax := os.Getenv("GPT_OSS_MAX_OUTPUT"); envMax != "" {
		if n, err := strconv.Atoi(envMax); err == nil {
			defaultMaxOutput = n
		}
	}
	replCmd.Flags().IntVar(&replMaxOutput, "max-output", defaultMaxOutput, "Maximum report body size in characters (0 = unlimited)")

	rootCmd.AddCommand(replCmd)
}
