// Package main is the entry point for the convview CLI, a viewer for
// stored agent/tool conversation trajectories.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/bogoliubon/tau-bench/internal/config"
	"github.com/bogoliubon/tau-bench/internal/results"
	"github.com/bogoliubon/tau-bench/internal/transcript"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func init() {
	// Load .env for any additional env vars (NO_COLOR etc.)
	_ = godotenv.Load()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("convview"),
		kong.Description("Print colorized conversations from LLM trajectory result files."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Run prints version information.
func (c *VersionCmd) Run() error {
	fmt.Printf("convview version %s (commit: %s, built: %s)\n", version, commit, buildTime)
	return nil
}

// loadConfig loads the viewer config from an explicit path or the
// default location.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadDefault()
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// reportError converts a load/locate failure into the single labeled
// error line the viewer emits. Structural problems never crash the
// process; each invocation fails independently.
func reportError(err error, file string, taskID, trial int, color bool) {
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		transcript.ErrorLine(os.Stdout, color, "File not found: %s", file)
	case errors.As(err, &pathErr):
		transcript.ErrorLine(os.Stdout, color, "Cannot read file: %v", err)
	case errors.Is(err, results.ErrTopLevel):
		transcript.ErrorLine(os.Stdout, color, "Expected a list at JSON top level.")
	case errors.Is(err, results.ErrNotFound):
		transcript.ErrorLine(os.Stdout, color, "No record found for task_id=%d, trial=%d.", taskID, trial)
	case errors.Is(err, results.ErrEmptyTrajectory):
		transcript.ErrorLine(os.Stdout, color, "No 'traj' found in the selected record.")
	default:
		transcript.ErrorLine(os.Stdout, color, "Failed to parse JSON: %v", err)
	}
}
