// Package workspaceload assembles a ready-to-render workspace: task record,
// editor content, resolved video URL and the synchronized transcript.
package workspaceload

import (
	"context"
	"fmt"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/defaults"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
)

// ServiceConfig is the configuration for the workspace load service.
type ServiceConfig struct {
	Client client.Client
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.WorkspaceLoad"})
	return nil
}

// Service loads workspaces.
type Service struct {
	client client.Client
	logger log.Logger
}

// NewService creates a new workspace load service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		logger: cfg.Logger,
	}, nil
}

// Load fetches the task and assembles the workspace. Missing editor content
// and unusable subtitles fall back to the bundled lesson, so a workspace
// always opens.
func (s *Service) Load(ctx context.Context, id string) (*model.Workspace, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: workspace id is required", model.ErrNotValid)
	}

	task, err := s.client.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not load workspace %s: %w", id, err)
	}

	ws := &model.Workspace{
		ID:       id,
		Task:     *task,
		VideoURL: s.client.ResolveURL(task.VideoURL),
	}

	ws.EditorContent = task.Code
	if ws.EditorContent == "" {
		ws.EditorContent = defaults.EditorContent
	}

	ws.Transcript, ws.TranscriptFallback = s.loadTranscript(ctx, task)

	return ws, nil
}

// Transcript fetches and parses the subtitles of a task, degrading to the
// bundled transcript on any failure. The boolean reports the fallback. Used
// to resynchronize an open workspace after a compile produces new subtitles.
func (s *Service) Transcript(ctx context.Context, task model.Task) (model.Transcript, bool) {
	return s.loadTranscript(ctx, &task)
}

// loadTranscript fetches and parses the task subtitles. Any failure degrades
// to the bundled transcript, subtitles never block a workspace from opening.
func (s *Service) loadTranscript(ctx context.Context, task *model.Task) (model.Transcript, bool) {
	if task.SRTURL == "" {
		s.logger.Debugf("Task %s has no subtitles, using bundled transcript", task.ID)
		return defaults.Transcript(), true
	}

	lines, err := s.client.FetchSubtitles(ctx, task.SRTURL)
	if err != nil {
		s.logger.Warningf("Could not load subtitles for task %s, using bundled transcript: %v", task.ID, err)
		return defaults.Transcript(), true
	}

	if len(lines) == 0 {
		s.logger.Warningf("Subtitles for task %s are empty, using bundled transcript", task.ID)
		return defaults.Transcript(), true
	}

	return model.Transcript{Lines: lines}, false
}
