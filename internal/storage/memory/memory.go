package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	session     *model.Session
	courses     []model.Course
	breakpoints map[string]model.QueuedBreakpoint
	mu          sync.RWMutex
	logger      log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		breakpoints: make(map[string]model.QueuedBreakpoint),
		logger:      cfg.Logger,
	}, nil
}

// SaveSession stores the session, replacing any previous one.
func (r *Repository) SaveSession(ctx context.Context, s model.Session) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sessionCopy := s
	r.session = &sessionCopy
	r.logger.Debugf("Saved session for %s", s.Username)

	return nil
}

// GetSession retrieves the stored session.
func (r *Repository) GetSession(ctx context.Context) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return nil, fmt.Errorf("session: %w", model.ErrNotFound)
	}

	sessionCopy := *r.session
	return &sessionCopy, nil
}

// DeleteSession deletes the stored session.
func (r *Repository) DeleteSession(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = nil
	return nil
}

// ReplaceCourses swaps the cached course list wholesale.
func (r *Repository) ReplaceCourses(ctx context.Context, courses []model.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.courses = append([]model.Course(nil), courses...)
	return nil
}

// ListCourses returns the cached course list, most recent first.
func (r *Repository) ListCourses(ctx context.Context) ([]model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := append([]model.Course(nil), r.courses...)
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})

	return courses, nil
}

// EnqueueBreakpoint stores a captured breakpoint in the delivery queue.
func (r *Repository) EnqueueBreakpoint(ctx context.Context, bp model.QueuedBreakpoint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("invalid breakpoint: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.breakpoints[bp.ID]; ok {
		return fmt.Errorf("breakpoint with id %s: %w", bp.ID, model.ErrAlreadyExists)
	}

	r.breakpoints[bp.ID] = bp
	r.logger.Debugf("Enqueued breakpoint %s", bp.ID)

	return nil
}

// ListPendingBreakpoints returns undelivered breakpoints, oldest first.
func (r *Repository) ListPendingBreakpoints(ctx context.Context) ([]model.QueuedBreakpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bps []model.QueuedBreakpoint
	for _, bp := range r.breakpoints {
		if bp.Status == model.QueuedBreakpointStatusPending {
			bps = append(bps, bp)
		}
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i].CreatedAt.Before(bps[j].CreatedAt) })

	return bps, nil
}

// ListWorkspaceBreakpoints returns all breakpoints captured for a workspace.
func (r *Repository) ListWorkspaceBreakpoints(ctx context.Context, workspaceID string) ([]model.QueuedBreakpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bps []model.QueuedBreakpoint
	for _, bp := range r.breakpoints {
		if bp.WorkspaceID == workspaceID {
			bps = append(bps, bp)
		}
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i].Breakpoint.StartTime < bps[j].Breakpoint.StartTime })

	return bps, nil
}

// MarkBreakpointSent flips a queued breakpoint to sent.
func (r *Repository) MarkBreakpointSent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bp, ok := r.breakpoints[id]
	if !ok {
		return fmt.Errorf("breakpoint %s: %w", id, model.ErrNotFound)
	}

	bp.Status = model.QueuedBreakpointStatusSent
	r.breakpoints[id] = bp

	return nil
}

// Close is a no-op, kept so the repository satisfies the same lifecycle as the
// SQLite one.
func (r *Repository) Close() error { return nil }
