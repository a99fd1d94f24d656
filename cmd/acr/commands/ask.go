package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/asyncroom/acr/internal/app/ask"
	"github.com/asyncroom/acr/internal/chat"
)

type AskCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	question    string
	contextFile string
}

// NewAskCommand returns the ask command.
func NewAskCommand(rootCmd *RootCommand, app *kingpin.Application) *AskCommand {
	c := &AskCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("ask", "Ask the learning assistant a question.")
	c.Cmd.Arg("question", "The question.").Required().StringVar(&c.question)
	c.Cmd.Flag("context-file", "File whose content is attached as lesson context.").ExistingFileVar(&c.contextFile)

	return c
}

func (c AskCommand) Name() string { return c.Cmd.FullCommand() }

func (c AskCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.clientConfig(ctx)
	if err != nil {
		return err
	}

	assistantURL := cfg.AssistantURL
	if assistantURL == "" {
		// The assistant rides on the classroom backend unless configured
		// separately.
		assistantURL = cfg.ServerURL
	}

	assistant, err := chat.NewHTTPAssistant(chat.Config{
		AssistantURL: assistantURL,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create assistant client: %w", err)
	}

	svc, err := ask.NewService(ask.ServiceConfig{
		Assistant: assistant,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	opts := ask.AskOptions{Prompt: c.question}
	if c.contextFile != "" {
		content, err := os.ReadFile(c.contextFile)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", c.contextFile, err)
		}
		opts.Prompt = fmt.Sprintf("%s\n\nLesson material:\n%s", c.question, content)
	}

	answer, err := svc.Ask(ctx, opts)
	if err != nil {
		return fmt.Errorf("could not get an answer: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, answer)

	return nil
}
