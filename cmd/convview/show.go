package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bogoliubon/tau-bench/internal/results"
	"github.com/bogoliubon/tau-bench/internal/transcript"
)

// Run renders the selected conversation, through the interactive pager
// when stdout is a terminal.
func (c *ShowCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	width := cfg.Display.Width
	if c.Width != nil {
		width = *c.Width
	}

	color := cfg.ColorEnabled(isTerminal(os.Stdout))
	if c.NoColor {
		color = false
	}

	usePager := cfg.Display.Pager && !c.NoPager && isTerminal(os.Stdout)

	if c.Follow {
		return c.runLive(width, color)
	}

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

	if usePager {
		var buf strings.Builder
		transcript.New(&buf, transcript.WithWidth(width), transcript.WithColor(color)).Render(rec)
		title := fmt.Sprintf("task_id=%d trial=%d", c.TaskID, c.Trial)
		return transcript.NewPager(title).Run(buf.String())
	}

	transcript.New(os.Stdout, transcript.WithWidth(width), transcript.WithColor(color)).Render(rec)
	return nil
}

// runLive watches the result file and re-renders the selected record on
// every change. Live mode always uses the pager.
func (c *ShowCmd) runLive(width int, color bool) error {
	renderFunc := func() (string, error) {
		records, err := results.Load(c.File)
		if err != nil {
			return "", err
		}
		rec, err := results.Select(records, c.TaskID, c.Trial)
		if err != nil {
			return "", err
		}

		var buf strings.Builder
		transcript.New(&buf, transcript.WithWidth(width), transcript.WithColor(color)).Render(rec)
		return buf.String(), nil
	}

	title := fmt.Sprintf("task_id=%d trial=%d (LIVE)", c.TaskID, c.Trial)
	if err := transcript.NewPager(title).RunLive(c.File, renderFunc); err != nil {
		reportError(err, c.File, c.TaskID, c.Trial, color)
	}
	return nil
}
