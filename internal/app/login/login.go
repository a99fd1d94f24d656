package login

import (
	"context"
	"fmt"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/session"
)

// ServiceConfig is the configuration for the login service.
type ServiceConfig struct {
	Client   client.Client
	Sessions *session.Manager
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Client == nil {
		return fmt.Errorf("client is required")
	}
	if c.Sessions == nil {
		return fmt.Errorf("session manager is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Login"})
	return nil
}

// Service handles authentication against the classroom backend.
type Service struct {
	client   client.Client
	sessions *session.Manager
	logger   log.Logger
}

// NewService creates a new login service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		client:   cfg.Client,
		sessions: cfg.Sessions,
		logger:   cfg.Logger,
	}, nil
}

// LoginOptions are the options for logging in.
type LoginOptions struct {
	Username  string
	Password  string
	ServerURL string
}

// Login authenticates against the backend and persists the session locally.
// A previous session for any user is replaced.
func (s *Service) Login(ctx context.Context, opts LoginOptions) (*model.Session, error) {
	if opts.Username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrNotValid)
	}
	if opts.Password == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrNotValid)
	}

	sess, token, err := s.client.Login(ctx, opts.Username, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("could not log in: %w", err)
	}

	if opts.ServerURL != "" {
		sess.ServerURL = opts.ServerURL
	}
	err = s.sessions.Save(ctx, *sess, token)
	if err != nil {
		return nil, fmt.Errorf("could not save session: %w", err)
	}

	s.logger.Infof("Logged in as %s", sess.Username)

	return sess, nil
}

// Logout clears the local session. Logging out while logged out is not an
// error.
func (s *Service) Logout(ctx context.Context) error {
	err := s.sessions.Clear(ctx)
	if err != nil {
		return fmt.Errorf("could not clear session: %w", err)
	}

	s.logger.Infof("Logged out")

	return nil
}

// Status returns the current session, model.ErrUnauthenticated when there is
// none.
func (s *Service) Status(ctx context.Context) (*model.Session, error) {
	return s.sessions.Current(ctx)
}
