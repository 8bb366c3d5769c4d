package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bogoliubon/tau-bench/internal/results"
)

var (
	listLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	listValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	listHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
)

// Run lists every record in the result file with its selector pair, turn
// count, and a short instruction hint.
func (c *ListCmd) Run() error {
	color := !c.NoColor && isTerminal(os.Stdout)

	records, err := results.Load(c.File)
	if err != nil {
		reportError(err, c.File, 0, 0, color)
		return nil
	}

	for i := range records {
		rec := &records[i]

		selector := fmt.Sprintf("task_id=%-4d trial=%-3d", rec.TaskID, rec.Trial)
		turns := fmt.Sprintf("%3d turns", len(rec.Traj))
		if !color {
			line := selector + "  " + turns
			if hint := instructionHint(rec, 60); hint != "" {
				line += "  " + hint
			}
			fmt.Println(line)
			continue
		}

		line := listValueStyle.Render(selector) + "  " + listLabelStyle.Render(turns)
		if hint := instructionHint(rec, 60); hint != "" {
			line += "  " + listHintStyle.Render(hint)
		}
		fmt.Println(line)
	}

	return nil
}

// instructionHint returns a single-line preview of the record's
// instruction, truncated to maxLen.
func instructionHint(rec *results.Record, maxLen int) string {
	instr := rec.Instruction()
	if instr == "" {
		return ""
	}
	instr = strings.TrimSpace(strings.ReplaceAll(instr, "\n", " "))
	runes := []rune(instr)
	if len(runes) <= maxLen {
		return instr
	}
	return string(runes[:maxLen-3]) + "..."
}
