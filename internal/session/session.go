package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/storage"
)

// keyringService is the service name used to namespace tokens in the OS
// keychain.
const keyringService = "acr"

// ManagerConfig is the configuration of the session Manager.
type ManagerConfig struct {
	Repository storage.Repository
	// KeyringService overrides the keychain service name, used by tests.
	KeyringService string
	Logger         log.Logger
}

func (c *ManagerConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.KeyringService == "" {
		c.KeyringService = keyringService
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "session.Manager"})

	return nil
}

// Manager owns the logged-in session. The session record (username, server)
// lives in the repository, the bearer token lives in the OS keychain and
// never touches disk.
type Manager struct {
	repo    storage.Repository
	service string
	logger  log.Logger
}

// NewManager returns a new session manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	err := cfg.defaults()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Manager{
		repo:    cfg.Repository,
		service: cfg.KeyringService,
		logger:  cfg.Logger,
	}, nil
}

// Save stores the session record and the token. An existing session is
// replaced.
func (m *Manager) Save(ctx context.Context, s model.Session, token string) error {
	err := s.Validate()
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrNotValid, err)
	}

	if token == "" {
		return fmt.Errorf("%w: token is empty", model.ErrNotValid)
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	err = keyring.Set(m.service, s.Username, token)
	if err != nil {
		return fmt.Errorf("could not store token in keychain: %w", err)
	}

	err = m.repo.SaveSession(ctx, s)
	if err != nil {
		return fmt.Errorf("could not store session: %w", err)
	}

	m.logger.Debugf("session saved for %q", s.Username)

	return nil
}

// Current returns the stored session record, model.ErrUnauthenticated when
// nobody is logged in.
func (m *Manager) Current(ctx context.Context) (*model.Session, error) {
	s, err := m.repo.GetSession(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUnauthenticated
		}
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	return s, nil
}

// Token returns the bearer token of the current session. It satisfies the
// API client token source.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Current(ctx)
	if err != nil {
		return "", err
	}

	token, err := keyring.Get(m.service, s.Username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", model.ErrUnauthenticated
		}
		return "", fmt.Errorf("could not read token from keychain: %w", err)
	}

	return token, nil
}

// Clear removes the session record and its token. Clearing an absent session
// is not an error.
func (m *Manager) Clear(ctx context.Context) error {
	s, err := m.repo.GetSession(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("could not get session: %w", err)
	}

	err = keyring.Delete(m.service, s.Username)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("could not delete token from keychain: %w", err)
	}

	err = m.repo.DeleteSession(ctx)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("could not delete session: %w", err)
	}

	m.logger.Debugf("session cleared for %q", s.Username)

	return nil
}
