package transcript

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/bogoliubon/tau-bench/internal/results"
)

// Stats holds aggregate statistics for one trajectory.
type Stats struct {
	// Turn counts
	Turns  int
	ByRole map[string]int

	// Tool-call counts across assistant turns
	ToolCalls int
	ToolUsage map[string]int

	// Turns with neither content nor tool calls
	Empty int
}

// ComputeStats calculates aggregate statistics from a turn sequence.
func ComputeStats(traj []results.Turn) *Stats {
	stats := &Stats{
		ByRole:    make(map[string]int),
		ToolUsage: make(map[string]int),
	}

	for i := range traj {
		turn := &traj[i]
		role := turn.Role
		if role == "" {
			role = results.RoleAssistant
		}

		stats.Turns++
		stats.ByRole[role]++

		for j := range turn.ToolCalls {
			stats.ToolCalls++
			name := turn.ToolCalls[j].Function.Name
			if name == "" {
				name = "<?>"
			}
			stats.ToolUsage[name]++
		}

		if contentOf(turn) == "" && len(turn.ToolCalls) == 0 {
			stats.Empty++
		}
	}

	return stats
}

// PrintStats outputs the statistics to the writer.
func PrintStats(w io.Writer, stats *Stats) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n",
		labelStyle.Render("Turns:"),
		valueStyle.Render(fmt.Sprintf("%d", stats.Turns)))

	if len(stats.ByRole) > 0 {
		fmt.Fprintln(w, headerStyle.Render("By Role:"))
		for _, role := range sortedKeys(stats.ByRole) {
			fmt.Fprintf(w, "  %s %s\n",
				labelStyle.Render(role+":"),
				valueStyle.Render(fmt.Sprintf("%d", stats.ByRole[role])))
		}
	}

	if stats.ToolCalls > 0 {
		fmt.Fprintln(w, headerStyle.Render("Tool Calls:"))
		fmt.Fprintf(w, "  %s %s\n",
			labelStyle.Render("Total:"),
			valueStyle.Render(fmt.Sprintf("%d", stats.ToolCalls)))
		for _, name := range sortedKeys(stats.ToolUsage) {
			fmt.Fprintf(w, "  %s %s\n",
				labelStyle.Render(name+":"),
				valueStyle.Render(fmt.Sprintf("%d", stats.ToolUsage[name])))
		}
	}

	if stats.Empty > 0 {
		fmt.Fprintf(w, "%s %s\n",
			labelStyle.Render("Empty turns:"),
			valueStyle.Render(fmt.Sprintf("%d", stats.Empty)))
	}
}

// sortedKeys returns map keys in stable order for deterministic output.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
