package courselist

import (
	"context"
	"errors"
	"fmt"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/session"
	"github.com/asyncroom/acr/internal/storage"
)

// ServiceConfig is the configuration for the course list service.
type ServiceConfig struct {
	Client     client.Client
	Repository storage.Repository
	// Sessions is optional, used only to attribute courses to the
	// logged-in user.
	Sessions *session.Manager
	Logger   log.Logger
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.CourseList"})
	return nil
}

// Service lists the user's completed tasks as a course catalog, keeping a
// local cache for offline browsing.
type Service struct {
	client   client.Client
	repo     storage.Repository
	sessions *session.Manager
	logger   log.Logger
}

// NewService creates a new course list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client:   cfg.Client,
		repo:     cfg.Repository,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
	}, nil
}

// ListOptions are the options for listing courses.
type ListOptions struct {
	Offset int
	Limit  int
}

// ListResult is the course catalog plus where it came from.
type ListResult struct {
	Courses []model.Course
	Total   int
	// FromCache is true when the backend was unreachable and the catalog
	// came from the local cache.
	FromCache bool
}

// List fetches the task page from the backend and projects it into courses,
// refreshing the local cache. When the backend is unreachable it falls back
// to the cached catalog. Authentication errors are never masked by the
// cache.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	page, err := s.client.ListTasks(ctx, opts.Offset, opts.Limit)
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			return nil, err
		}

		s.logger.Warningf("Backend unreachable, using cached catalog: %v", err)

		cached, cacheErr := s.repo.ListCourses(ctx)
		if cacheErr != nil {
			return nil, fmt.Errorf("could not list tasks: %w", err)
		}

		return &ListResult{Courses: cached, Total: len(cached), FromCache: true}, nil
	}

	courses := model.TasksToCourses(page.Tasks, s.author(ctx))

	err = s.repo.ReplaceCourses(ctx, courses)
	if err != nil {
		// A stale cache is not worth failing the listing for.
		s.logger.Warningf("Could not refresh course cache: %v", err)
	}

	return &ListResult{Courses: courses, Total: page.Total}, nil
}

func (s *Service) author(ctx context.Context) string {
	if s.sessions == nil {
		return ""
	}

	sess, err := s.sessions.Current(ctx)
	if err != nil {
		return ""
	}
	return sess.Username
}
