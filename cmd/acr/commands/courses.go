package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/app/courselist"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/printer"
)

type CoursesCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	offset int
	limit  int
	format string
}

// NewCoursesCommand returns the courses command.
func NewCoursesCommand(rootCmd *RootCommand, app *kingpin.Application) *CoursesCommand {
	c := &CoursesCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("courses", "List the course catalog.").Alias("list")
	c.Cmd.Flag("offset", "Pagination offset.").Default("0").IntVar(&c.offset)
	c.Cmd.Flag("limit", "Page size.").Default("20").IntVar(&c.limit)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c CoursesCommand) Name() string { return c.Cmd.FullCommand() }

func (c CoursesCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

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

	cli, err := c.rootCmd.apiClient(cfg, sessions)
	if err != nil {
		return err
	}

	svc, err := courselist.NewService(courselist.ServiceConfig{
		Client:     cli,
		Repository: repo,
		Sessions:   sessions,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.List(ctx, courselist.ListOptions{
		Offset: c.offset,
		Limit:  c.limit,
	})
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.rootCmd.expireSession(ctx, sessions, err)
		}
		return fmt.Errorf("could not list courses: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if res.FromCache {
		_ = p.PrintMessage("backend unreachable, showing cached catalog")
	}

	if err := p.PrintCourseList(res.Courses); err != nil {
		return fmt.Errorf("could not print courses: %w", err)
	}

	return nil
}
