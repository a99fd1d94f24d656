package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/app/login"
)

type LoginCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	username string
	password string
}

// NewLoginCommand returns the login command.
func NewLoginCommand(rootCmd *RootCommand, app *kingpin.Application) *LoginCommand {
	c := &LoginCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("login", "Log in to the classroom backend.")
	c.Cmd.Flag("username", "Username, prompted when omitted.").StringVar(&c.username)
	c.Cmd.Flag("password", "Password, prompted when omitted.").Envar("ACR_PASSWORD").StringVar(&c.password)

	return c
}

func (c LoginCommand) Name() string { return c.Cmd.FullCommand() }

func (c LoginCommand) Run(ctx context.Context) error {
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

	svc, err := login.NewService(login.ServiceConfig{
		Client:   cli,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	username, password, err := c.credentials()
	if err != nil {
		return err
	}

	sess, err := svc.Login(ctx, login.LoginOptions{
		Username:  username,
		Password:  password,
		ServerURL: cfg.ServerURL,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Logged in as %s\n", sess.Username)

	return nil
}

// credentials returns the flag values, prompting on stdin for whatever was
// omitted.
func (c LoginCommand) credentials() (username, password string, err error) {
	username = c.username
	password = c.password
	reader := bufio.NewReader(c.rootCmd.Stdin)

	if username == "" {
		fmt.Fprint(c.rootCmd.Stdout, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("could not read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Fprint(c.rootCmd.Stdout, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("could not read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	return username, password, nil
}
