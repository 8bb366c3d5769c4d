package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/bogoliubon/tau-bench/internal/results"
	"github.com/bogoliubon/tau-bench/internal/transcript"
)

// Run prints aggregate statistics for the selected conversation.
func (c *StatsCmd) Run() error {
	color := !c.NoColor && isTerminal(os.Stdout)

	records, err := results.Load(c.File)
	if err != nil {
		reportError(err, c.File, c.TaskID, c.Trial, color)
		return nil
	}
	rec, err := results.Select(records, c.TaskID, c.Trial)
	if err != nil {
		reportError(err, c.File, c.TaskID, c.Trial, color)
		return nil
	}

	header := fmt.Sprintf("Statistics — task_id=%d, trial=%d", rec.TaskID, rec.Trial)
	if color {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		fmt.Println(headerStyle.Render(header))
	} else {
		fmt.Println(header)
	}

	transcript.PrintStats(os.Stdout, transcript.ComputeStats(rec.Traj))
	return nil
}
