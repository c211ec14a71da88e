package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/water-vapor/gpt-oss/internal/mcpserver"
	"github.com/water-vapor/gpt-oss/internal/tools"
	"github.com/water-vapor/gpt-oss/internal/version"
)

var serveLanguages string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the code execution tools to an MCP client over stdio",
	Long: `Serve the selected code execution tools to a Model Context Protocol
client over stdio. Each tool keeps its persistent environment for the
lifetime of the process, so one server process is one session. Logs go to
stderr; stdout carries the protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := tools.NewRegistry()
		for _, language := range strings.Split(serveLanguages, ",") {
			language = strings.TrimSpace(language)
			if language == "" {
				continue
			}
			tool, err := tools.New(language)
			if err != nil {
				return err
			}
			if err := reg.Register(tool); err != nil {
				return fmt.Errorf("register %s tool: %w", language, err)
			}
		}
		if len(reg.Names()) == 0 {
			return fmt.Errorf("no tools selected")
		}

		logger := log.New(cmd.ErrOrStderr(), "gpt-oss: ", log.LstdFlags)
		logger.Printf("session %s serving tools: %s", uuid.New().String(), strings.Join(reg.Names(), ", "))
		return mcpserver.Run(cmd.Context(), reg, version.Version)
	},
}

func init() {
	// Languages flag with env var fallback
	defaultLanguages := "python,javascript,tengo"
	if envLanguages := os.Getenv("GPT_OSS_LANGUAGES"); envLanguages != "" {
		defaultLanguages = envLanguages
	}
	serveCmd.Flags().StringVar(&serveLanguages, "languages", defaultLanguages, "Comma-separated languages to serve")

	rootCmd.AddCommand(serveCmd)
}
