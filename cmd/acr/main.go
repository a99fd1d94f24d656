package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/asyncroom/acr/cmd/acr/commands"
	"github.com/asyncroom/acr/internal/log"
	loglogrus "github.com/asyncroom/acr/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	// Local .env files feed the Envar-bound flags in development.
	_ = godotenv.Load()

	app := kingpin.New("acr", "Async classroom authoring and playback tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	loginCmd := commands.NewLoginCommand(rootCmd, app)
	logoutCmd := commands.NewLogoutCommand(rootCmd, app)
	coursesCmd := commands.NewCoursesCommand(rootCmd, app)
	statusCmd := commands.NewStatusCommand(rootCmd, app)
	compileCmd := commands.NewCompileCommand(rootCmd, app)
	workspaceCmd := commands.NewWorkspaceCommand(rootCmd, app)
	logCmd := commands.NewLogCommand(rootCmd, app)
	askCmd := commands.NewAskCommand(rootCmd, app)

	// Breakpoint subcommands share a parent command.
	bpCmd := commands.NewBreakpointCommand(app)
	bpFlushCmd := commands.NewBreakpointFlushCommand(rootCmd, bpCmd)
	bpListCmd := commands.NewBreakpointListCommand(rootCmd, bpCmd)

	cmds := map[string]commands.Command{
		loginCmd.Name():     loginCmd,
		logoutCmd.Name():    logoutCmd,
		coursesCmd.Name():   coursesCmd,
		statusCmd.Name():    statusCmd,
		compileCmd.Name():   compileCmd,
		workspaceCmd.Name(): workspaceCmd,
		logCmd.Name():       logCmd,
		askCmd.Name():       askCmd,
		bpFlushCmd.Name():   bpFlushCmd,
		bpListCmd.Name():    bpListCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output
	// (table/JSON) to prevent log noise from mixing with printer output in
	// the terminal. Users can still enable logging with --debug. The
	// workspace shell owns the whole terminal, logs would corrupt it.
	printerCommands := map[string]bool{
		"courses":         true,
		"status":          true,
		"log":             true,
		"breakpoint list": true,
		"workspace":       true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(ctx, *rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(ctx context.Context, config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
