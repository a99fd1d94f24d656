package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asyncroom/acr/internal/app/breakpoint"
	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/app/workspaceload"
	"github.com/asyncroom/acr/internal/defaults"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/playback"
	"github.com/asyncroom/acr/internal/tui"
)

type WorkspaceCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	workspaceID string
}

// NewWorkspaceCommand returns the workspace command.
func NewWorkspaceCommand(rootCmd *RootCommand, app *kingpin.Application) *WorkspaceCommand {
	c := &WorkspaceCommand{rootCmd: rootCmd}

	// The studio and classroom aliases are the legacy route names for the
	// teacher and student entry points, both land on the unified shell.
	c.Cmd = app.Command("workspace", "Open the interactive workspace shell.").
		Alias("studio").
		Alias("classroom")
	c.Cmd.Arg("id", "Workspace (task) ID.").Required().StringVar(&c.workspaceID)

	return c
}

func (c WorkspaceCommand) Name() string { return c.Cmd.FullCommand() }

func (c WorkspaceCommand) Run(ctx context.Context) error {
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

	loadSvc, err := workspaceload.NewService(workspaceload.ServiceConfig{
		Client: cli,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	compileSvc, err := compile.NewService(compile.ServiceConfig{
		Client:          cli,
		PollInterval:    cfg.PollInterval,
		PollMaxAttempts: cfg.PollMaxAttempts,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	bpSvc, err := breakpoint.NewService(breakpoint.ServiceConfig{
		Client:     cli,
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	ws, err := loadSvc.Load(ctx, c.workspaceID)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.rootCmd.expireSession(ctx, sessions, err)
		}
		return fmt.Errorf("could not load workspace: %w", err)
	}

	controller, err := playback.NewController(playback.ControllerConfig{
		Transcript: ws.Transcript,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create playback controller: %w", err)
	}

	app := tui.NewApp(tui.AppConfig{
		Workspace:      ws,
		Controller:     controller,
		Compiler:       compileSvc,
		Breakpoints:    bpSvc,
		Loader:         loadSvc,
		Commits:        defaults.Commits(),
		SecondsPerLine: cfg.SecondsPerLine,
		Logger:         logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("workspace shell failed: %w", err)
	}

	return nil
}
