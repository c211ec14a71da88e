package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for the session banner title
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// promptStyle for the input prompt
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// bannerBoxStyle for the session banner box
	bannerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 1)
)

// formatBanner renders the interactive session header.
func formatBanner(language, sessionID string) string {
	content := fmt.Sprintf("%s\n%s %s\n%s %s",
		titleStyle.Render("gpt-oss "+language+" session"),
		dimStyle.Render("Session:"), sessionID,
		dimStyle.Render("Exit:"), ":reset clears state, ctrl-d quits",
	)
	return bannerBoxStyle.Render(content)
}
