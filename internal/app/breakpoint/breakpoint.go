// Package breakpoint captures non-understanding markers on the playback
// timeline and keeps them flowing to the backend, queueing locally when it is
// unreachable.
package breakpoint

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/storage"
)

// ServiceConfig is the configuration for the breakpoint service.
type ServiceConfig struct {
	Client     client.Client
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Breakpoint"})
	return nil
}

// Service handles breakpoint capture, queueing and density analysis.
type Service struct {
	client client.Client
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new breakpoint service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client: cfg.Client,
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// CaptureOptions are the options for capturing a breakpoint.
type CaptureOptions struct {
	WorkspaceID string
	// At is the playback position the student marked.
	At float64
	// ActiveLine is the transcript line active at the mark, nil when the
	// position falls in a gap.
	ActiveLine *model.TranscriptLine
	// Description is the student's optional note.
	Description string
}

// CaptureResult reports where the captured breakpoint ended up.
type CaptureResult struct {
	Breakpoint model.Breakpoint
	// Queued is true when the backend was unreachable and the breakpoint
	// was stored locally for a later flush.
	Queued bool
}

// Capture records a breakpoint at the given playback position. Both interval
// ends are the position itself. Delivery is best effort: a backend failure
// queues the breakpoint locally instead of losing it.
func (s *Service) Capture(ctx context.Context, opts CaptureOptions) (*CaptureResult, error) {
	if opts.WorkspaceID == "" {
		return nil, fmt.Errorf("%w: workspace id is required", model.ErrNotValid)
	}
	if opts.At < 0 {
		return nil, fmt.Errorf("%w: position must not be negative", model.ErrNotValid)
	}

	text := model.FallbackBreakpointText
	if opts.ActiveLine != nil {
		text = opts.ActiveLine.Text
	}

	bp := model.Breakpoint{
		StartTime:   opts.At,
		EndTime:     opts.At,
		Text:        text,
		Description: opts.Description,
	}

	record := model.QueuedBreakpoint{
		ID:          ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		WorkspaceID: opts.WorkspaceID,
		Breakpoint:  bp,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.client.CreateBreakpoint(ctx, opts.WorkspaceID, bp)
	if err == nil {
		s.logger.Debugf("Breakpoint delivered for workspace %s at %.3fs", opts.WorkspaceID, opts.At)
		// Record sent captures too so listing and density see every breakpoint.
		record.Status = model.QueuedBreakpointStatusSent
		if err := s.repo.EnqueueBreakpoint(ctx, record); err != nil {
			s.logger.Warningf("Could not record delivered breakpoint: %v", err)
		}
		return &CaptureResult{Breakpoint: bp}, nil
	}

	if errors.Is(err, model.ErrUnauthenticated) || errors.Is(err, model.ErrNotValid) {
		return nil, err
	}

	s.logger.Warningf("Could not deliver breakpoint, queueing locally: %v", err)

	record.Status = model.QueuedBreakpointStatusPending
	err = s.repo.EnqueueBreakpoint(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("could not queue breakpoint: %w", err)
	}

	return &CaptureResult{Breakpoint: bp, Queued: true}, nil
}

// FlushResult summarizes a queue flush.
type FlushResult struct {
	Sent   int
	Failed int
}

// Flush tries to deliver every pending queued breakpoint. Breakpoints that
// still fail stay pending for the next flush.
func (s *Service) Flush(ctx context.Context) (*FlushResult, error) {
	pending, err := s.repo.ListPendingBreakpoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list pending breakpoints: %w", err)
	}

	res := &FlushResult{}
	for _, qb := range pending {
		err := s.client.CreateBreakpoint(ctx, qb.WorkspaceID, qb.Breakpoint)
		if err != nil {
			if errors.Is(err, model.ErrUnauthenticated) {
				return res, err
			}
			s.logger.Warningf("Could not flush breakpoint %s: %v", qb.ID, err)
			res.Failed++
			continue
		}

		err = s.repo.MarkBreakpointSent(ctx, qb.ID)
		if err != nil {
			return res, fmt.Errorf("could not mark breakpoint %s as sent: %w", qb.ID, err)
		}
		res.Sent++
	}

	s.logger.Infof("Flushed breakpoint queue: %d sent, %d still pending", res.Sent, res.Failed)

	return res, nil
}

// List returns the locally known breakpoints of a workspace, newest first.
func (s *Service) List(ctx context.Context, workspaceID string) ([]model.QueuedBreakpoint, error) {
	if workspaceID == "" {
		return nil, fmt.Errorf("%w: workspace id is required", model.ErrNotValid)
	}

	return s.repo.ListWorkspaceBreakpoints(ctx, workspaceID)
}

// DefaultDensityBucket is the histogram bucket width in seconds.
const DefaultDensityBucket = 15.0

// Density buckets the workspace breakpoints along the timeline and returns
// the per-bucket counts, ordered by timestamp. Bucket size zero or below
// uses the default.
func (s *Service) Density(ctx context.Context, workspaceID string, bucket float64) ([]model.CrashPoint, error) {
	if bucket <= 0 {
		bucket = DefaultDensityBucket
	}

	bps, err := s.List(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	counts := map[float64]int{}
	for _, qb := range bps {
		ts := float64(int(qb.Breakpoint.StartTime/bucket)) * bucket
		counts[ts]++
	}

	points := make([]model.CrashPoint, 0, len(counts))
	for ts, n := range counts {
		points = append(points, model.CrashPoint{Timestamp: ts, Count: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })

	return points, nil
}
