// Package compile submits authored lesson Markdown to the backend and polls
// the resulting task until it reaches a terminal state.
package compile

import (
	"context"
	"fmt"
	"time"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
)

// ServiceConfig is the configuration for the compile service.
type ServiceConfig struct {
	Client client.Client
	// PollInterval is the fixed delay between status polls.
	PollInterval time.Duration
	// PollMaxAttempts bounds the polling loop. Failed polls count too.
	PollMaxAttempts int
	Logger          log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.PollInterval <= 0 {
		c.PollInterval = model.DefaultPollInterval
	}
	if c.PollMaxAttempts <= 0 {
		c.PollMaxAttempts = model.DefaultPollMaxAttempts
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Compile"})
	return nil
}

// Service handles compile submission and task polling.
type Service struct {
	client       client.Client
	pollInterval time.Duration
	maxAttempts  int
	logger       log.Logger
}

// NewService creates a new compile service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client:       cfg.Client,
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.PollMaxAttempts,
		logger:       cfg.Logger,
	}, nil
}

// Submit sends the authored content to the backend and returns the pending
// task.
func (s *Service) Submit(ctx context.Context, content string) (*model.Task, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", model.ErrNotValid)
	}

	task, err := s.client.SubmitCompile(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("could not submit compile: %w", err)
	}

	s.logger.Infof("Submitted compile task %s", task.ID)

	return task, nil
}

// Progress is a snapshot of a poll attempt, delivered to the watch callback.
type Progress struct {
	Attempt int
	Task    *model.Task
	// Err is set when the poll attempt itself failed. Such attempts still
	// count against the attempt budget.
	Err error
}

// WatchOptions are the options for watching a task until completion.
type WatchOptions struct {
	TaskID string
	// OnProgress, when set, is called after every poll attempt.
	OnProgress func(Progress)
}

// Watch polls the task at a fixed interval until it reaches a terminal
// state, the attempt budget runs out or the context is cancelled. Media URLs
// on the returned task are resolved to absolute form.
func (s *Service) Watch(ctx context.Context, opts WatchOptions) (*model.Task, error) {
	if opts.TaskID == "" {
		return nil, fmt.Errorf("%w: task id is required", model.ErrNotValid)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		task, err := s.client.GetTask(ctx, opts.TaskID)

		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Attempt: attempt, Task: task, Err: err})
		}

		if err != nil {
			// Transient failures burn an attempt instead of aborting,
			// the task may still finish while the network recovers.
			s.logger.Warningf("Poll attempt %d/%d failed: %v", attempt, s.maxAttempts, err)
		} else if task.Status.IsTerminal() {
			if task.Status == model.TaskStatusFailed {
				return task, fmt.Errorf("compile task %s failed: %s", task.ID, task.Message)
			}

			s.logger.Infof("Compile task %s completed after %d polls", task.ID, attempt)
			s.resolveMedia(task)
			return task, nil
		}

		if attempt == s.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return nil, fmt.Errorf("compile task %s timed out after %d polls", opts.TaskID, s.maxAttempts)
}

// SubmitAndWatch submits the content and follows the resulting task to its
// terminal state.
func (s *Service) SubmitAndWatch(ctx context.Context, content string, onProgress func(Progress)) (*model.Task, error) {
	task, err := s.Submit(ctx, content)
	if err != nil {
		return nil, err
	}

	return s.Watch(ctx, WatchOptions{TaskID: task.ID, OnProgress: onProgress})
}

func (s *Service) resolveMedia(task *model.Task) {
	task.VideoURL = s.client.ResolveURL(task.VideoURL)
	task.SRTURL = s.client.ResolveURL(task.SRTURL)
}
