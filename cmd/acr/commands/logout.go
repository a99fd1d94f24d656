package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

)

type LogoutCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewLogoutCommand returns the logout command.
func NewLogoutCommand(rootCmd *RootCommand, app *kingpin.Application) *LogoutCommand {
	c := &LogoutCommand{rootCmd: rootCmd}
	c.Cmd = app.Command("logout", "Log out and clear the local session.")
	return c
}

func (c LogoutCommand) Name() string { return c.Cmd.FullCommand() }

func (c LogoutCommand) Run(ctx context.Context) error {
	repo, err := c.rootCmd.repository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	sessions, err := c.rootCmd.sessions(repo)
	if err != nil {
		return err
	}

	err = sessions.Clear(ctx)
	if err != nil {
		return fmt.Errorf("could not clear session: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, "Logged out")

	return nil
}
