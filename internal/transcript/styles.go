// Package transcript renders a stored conversation trajectory into a
// role-colorized, word-wrapped transcript.
package transcript

import "github.com/charmbracelet/lipgloss"

// Role color scheme - fixed palette, one style per role/kind. The mapping
// never varies by content; adding a role is a table edit here.
var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green - user turns

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // Cyan - assistant turns

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")) // Magenta - tool turns

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - system, rules, labels

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // Red - error lines

	boldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Faint(true) // Dim - placeholders
)

// paint applies a style only when color output is enabled, so disabled
// runs pass text through byte-for-byte.
func paint(st lipgloss.Style, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return st.Render(s)
}
