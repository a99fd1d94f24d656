package ask

import (
	"context"
	"fmt"

	"github.com/asyncroom/acr/internal/chat"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
)

// ServiceConfig is the configuration for the ask service.
type ServiceConfig struct {
	Assistant chat.Assistant
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Assistant == nil {
		return fmt.Errorf("assistant is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Ask"})
	return nil
}

// Service bridges student questions to the learning assistant.
type Service struct {
	assistant chat.Assistant
	logger    log.Logger
}

// NewService creates a new ask service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		assistant: cfg.Assistant,
		logger:    cfg.Logger,
	}, nil
}

// AskOptions are the options for asking the assistant.
type AskOptions struct {
	Prompt string
	// ActiveLine, when set, is attached so the assistant sees what the
	// student is watching.
	ActiveLine *model.TranscriptLine
}

// Ask forwards the question with optional lesson context and returns the
// answer.
func (s *Service) Ask(ctx context.Context, opts AskOptions) (string, error) {
	if opts.Prompt == "" {
		return "", fmt.Errorf("%w: prompt is empty", model.ErrNotValid)
	}

	q := chat.Question{Prompt: opts.Prompt}
	if opts.ActiveLine != nil {
		q.Context = fmt.Sprintf("The student is at %.0fs of the lesson, on the line: %q", opts.ActiveLine.StartTime, opts.ActiveLine.Text)
	}

	answer, err := s.assistant.Ask(ctx, q)
	if err != nil {
		return "", fmt.Errorf("could not get an answer: %w", err)
	}

	s.logger.Debugf("Question answered")

	return answer, nil
}
