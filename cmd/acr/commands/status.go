package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/printer"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	format string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Get the status of a compile task, or the session when no task is given.")
	c.Cmd.Arg("task-id", "Task ID.").StringVar(&c.taskID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	cfg, err := c.rootCmd.clientConfig(ctx)
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.repository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	sessions, err := c.rootCmd.sessions(repo)
	if err != nil {
		return err
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	// Without a task id the command reports the session.
	if c.taskID == "" {
		sess, err := sessions.Current(ctx)
		if err != nil {
			if errors.Is(err, model.ErrUnauthenticated) {
				return p.PrintMessage("not logged in")
			}
			return fmt.Errorf("could not get session: %w", err)
		}
		return p.PrintSession(*sess)
	}

	cli, err := c.rootCmd.apiClient(cfg, sessions)
	if err != nil {
		return err
	}

	task, err := cli.GetTask(ctx, c.taskID)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.rootCmd.expireSession(ctx, sessions, err)
		}
		return fmt.Errorf("could not get task status: %w", err)
	}

	if err := p.PrintTask(*task); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
