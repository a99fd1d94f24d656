package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/app/breakpoint"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/printer"
	"github.com/asyncroom/acr/internal/session"
)

// NewBreakpointCommand returns the shared parent of the breakpoint
// subcommands.
func NewBreakpointCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("breakpoint", "Manage captured breakpoints.")
}

type BreakpointFlushCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewBreakpointFlushCommand returns the breakpoint flush command.
func NewBreakpointFlushCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *BreakpointFlushCommand {
	c := &BreakpointFlushCommand{rootCmd: rootCmd}
	c.Cmd = parent.Command("flush", "Deliver breakpoints queued while offline.")
	return c
}

func (c BreakpointFlushCommand) Name() string { return c.Cmd.FullCommand() }

func (c BreakpointFlushCommand) Run(ctx context.Context) error {
	svc, sessions, closeRepo, err := newBreakpointService(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	res, err := svc.Flush(ctx)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.rootCmd.expireSession(ctx, sessions, err)
		}
		return fmt.Errorf("could not flush breakpoints: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Flushed: %d sent, %d still pending\n", res.Sent, res.Failed)

	return nil
}

type BreakpointListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	workspaceID string
	format      string
}

// NewBreakpointListCommand returns the breakpoint list command.
func NewBreakpointListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *BreakpointListCommand {
	c := &BreakpointListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the locally known breakpoints of a workspace.")
	c.Cmd.Arg("workspace-id", "Workspace (task) ID.").Required().StringVar(&c.workspaceID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c BreakpointListCommand) Name() string { return c.Cmd.FullCommand() }

func (c BreakpointListCommand) Run(ctx context.Context) error {
	svc, _, closeRepo, err := newBreakpointService(ctx, c.rootCmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	bps, err := svc.List(ctx, c.workspaceID)
	if err != nil {
		return fmt.Errorf("could not list breakpoints: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintBreakpoints(bps); err != nil {
		return fmt.Errorf("could not print breakpoints: %w", err)
	}

	return nil
}

// newBreakpointService wires the breakpoint service with its repository,
// returning a cleanup closing the repo.
func newBreakpointService(ctx context.Context, rootCmd *RootCommand) (*breakpoint.Service, *session.Manager, func(), error) {
	cfg, err := rootCmd.clientConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	repo, err := rootCmd.repository(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	sessions, err := rootCmd.sessions(repo)
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	cli, err := rootCmd.apiClient(cfg, sessions)
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	svc, err := breakpoint.NewService(breakpoint.ServiceConfig{
		Client:     cli,
		Repository: repo,
		Logger:     rootCmd.Logger,
	})
	if err != nil {
		repo.Close()
		return nil, nil, nil, fmt.Errorf("could not create service: %w", err)
	}

	return svc, sessions, func() { repo.Close() }, nil
}
