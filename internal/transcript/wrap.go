package transcript

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// bodyIndent is the fixed left margin applied to every turn body.
const bodyIndent = 2

// preservePrefixes marks lines that must pass through unwrapped: code
// fences, blockquotes, and list bullets.
var preservePrefixes = []string{"```", "> ", "- ", "* "}

// wrapText word-wraps text line by line. Lines whose trimmed form starts
// with a preserve prefix pass through unmodified. A non-positive width
// disables wrapping entirely.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		if preserveLine(line) {
			wrapped = append(wrapped, line)
			continue
		}
		wrapped = append(wrapped, wordwrap.String(line, width))
	}
	return strings.Join(wrapped, "\n")
}

// preserveLine reports whether a line should bypass wrapping.
func preserveLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range preservePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// indentBody applies the fixed two-space margin to every line.
func indentBody(s string) string {
	return indent.String(s, bodyIndent)
}
