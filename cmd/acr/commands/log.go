package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/defaults"
	"github.com/asyncroom/acr/internal/printer"
)

type LogCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewLogCommand returns the log command.
func NewLogCommand(rootCmd *RootCommand, app *kingpin.Application) *LogCommand {
	c := &LogCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("log", "Show the lesson revision history.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c LogCommand) Name() string { return c.Cmd.FullCommand() }

func (c LogCommand) Run(ctx context.Context) error {
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	// The backend has no revision API yet, the panel renders the bundled
	// sample history.
	if err := p.PrintCommitLog(defaults.Commits()); err != nil {
		return fmt.Errorf("could not print log: %w", err)
	}

	return nil
}
