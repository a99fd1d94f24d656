package storage

import (
	"context"

	"github.com/asyncroom/acr/internal/model"
)

// Repository is the interface for the client's local persistence: the login
// session, the cached course list and the breakpoint delivery queue.
type Repository interface {
	// SaveSession stores the session, replacing any previous one. There is
	// at most one session at a time.
	SaveSession(ctx context.Context, s model.Session) error
	GetSession(ctx context.Context) (*model.Session, error)
	DeleteSession(ctx context.Context) error

	// ReplaceCourses swaps the cached course list wholesale after a
	// successful backend listing.
	ReplaceCourses(ctx context.Context, courses []model.Course) error
	ListCourses(ctx context.Context) ([]model.Course, error)

	EnqueueBreakpoint(ctx context.Context, bp model.QueuedBreakpoint) error
	ListPendingBreakpoints(ctx context.Context) ([]model.QueuedBreakpoint, error)
	ListWorkspaceBreakpoints(ctx context.Context, workspaceID string) ([]model.QueuedBreakpoint, error)
	MarkBreakpointSent(ctx context.Context, id string) error
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name Repository
