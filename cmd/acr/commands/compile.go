package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/model"
)

type CompileCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	file  string
	watch bool
}

// NewCompileCommand returns the compile command.
func NewCompileCommand(rootCmd *RootCommand, app *kingpin.Application) *CompileCommand {
	c := &CompileCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("compile", "Submit authored lesson Markdown for compilation.")
	c.Cmd.Arg("file", "Markdown file to compile.").Required().ExistingFileVar(&c.file)
	c.Cmd.Flag("watch", "Poll the task until it finishes.").BoolVar(&c.watch)

	return c
}

func (c CompileCommand) Name() string { return c.Cmd.FullCommand() }

func (c CompileCommand) Run(ctx context.Context) error {
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

	svc, err := compile.NewService(compile.ServiceConfig{
		Client:          cli,
		PollInterval:    cfg.PollInterval,
		PollMaxAttempts: cfg.PollMaxAttempts,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	content, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", c.file, err)
	}

	task, err := svc.Submit(ctx, string(content))
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return c.rootCmd.expireSession(ctx, sessions, err)
		}
		return fmt.Errorf("could not submit: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Submitted task %s\n", task.ID)

	if !c.watch {
		return nil
	}

	task, err = svc.Watch(ctx, compile.WatchOptions{
		TaskID: task.ID,
		OnProgress: func(p compile.Progress) {
			if p.Err != nil {
				fmt.Fprintf(c.rootCmd.Stdout, "poll %d: %v\n", p.Attempt, p.Err)
				return
			}
			fmt.Fprintf(c.rootCmd.Stdout, "poll %d: %s\n", p.Attempt, p.Task.Status)
		},
	})
	if err != nil {
		return fmt.Errorf("compile did not finish: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Video:     %s\n", task.VideoURL)
	if task.SRTURL != "" {
		fmt.Fprintf(c.rootCmd.Stdout, "Subtitles: %s\n", task.SRTURL)
	}

	return nil
}
