package repl

import (
	"fmt"
	"strings"
)

// truncationNotice is appended when a report body exceeds MaxOutputChars.
const truncationNotice = "\n... (output truncated)"

// composeReport builds the per-call result text: the counter label first,
// then captured output, the rendered result value, and error text. Output
// and error text are trimmed of trailing whitespace; each part is included
// only when non-empty, joined by single newlines. maxChars caps the body
// below the label (0 disables truncation).
func composeReport(count, maxChars int, stdout, value, errText string) string {
	label := fmt.Sprintf("[Execution #%d]", count)

	var parts []string
	if s := strings.TrimRight(stdout, " \t\r\n"); s != "" {
		parts = append(parts, s)
	}
	if value != "" {
		parts = append(parts, value)
	}
	if s := strings.TrimRight(errText, " \t\r\n"); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return label
	}

	body := strings.Join(parts, "\n")
	if maxChars > 0 && len(body) > maxChars {
		body = body[:maxChars] + truncationNotice
	}
	return label + "\n" + body
}
