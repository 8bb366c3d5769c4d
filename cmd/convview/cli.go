// Package main defines the CLI structure using kong.
package main

// CLI defines the command-line interface.
type CLI struct {
	Show    ShowCmd    `cmd:"" help:"Render one conversation as a transcript"`
	List    ListCmd    `cmd:"" help:"List conversation records in a result file"`
	Stats   StatsCmd   `cmd:"" help:"Show aggregate statistics for one conversation"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// ShowCmd renders one conversation record.
type ShowCmd struct {
	File    string `short:"f" required:"" help:"Path to the JSON result file"`
	TaskID  int    `short:"t" name:"task-id" required:"" help:"Task ID to select"`
	Trial   int    `short:"r" required:"" help:"Trial index to select"`
	Width   *int   `short:"w" help:"Soft-wrap width (<=0 to disable, default from config)"`
	NoColor bool   `help:"Disable ANSI color output"`
	NoPager bool   `help:"Disable interactive pager (for piping)"`
	Follow  bool   `help:"Watch the result file and re-render on change"`
	Config  string `help:"Config file path"`
}

// ListCmd enumerates the records in a result file.
type ListCmd struct {
	File    string `arg:"" help:"Path to the JSON result file"`
	NoColor bool   `help:"Disable ANSI color output"`
}

// StatsCmd shows aggregate statistics for one conversation.
type StatsCmd struct {
	File    string `short:"f" required:"" help:"Path to the JSON result file"`
	TaskID  int    `short:"t" name:"task-id" required:"" help:"Task ID to select"`
	Trial   int    `short:"r" required:"" help:"Trial index to select"`
	NoColor bool   `help:"Disable ANSI color output"`
}

// VersionCmd shows version information.
type VersionCmd struct{}
