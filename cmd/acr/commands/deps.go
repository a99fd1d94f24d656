package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asyncroom/acr/internal/client"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/session"
	"github.com/asyncroom/acr/internal/storage"
	storageio "github.com/asyncroom/acr/internal/storage/io"
	"github.com/asyncroom/acr/internal/storage/memory"
	"github.com/asyncroom/acr/internal/storage/sqlite"
)

// Repository is the local store with its close lifecycle attached.
type Repository interface {
	storage.Repository
	Close() error
}

// defaultServerURL is used when neither the flag nor the config file set one.
const defaultServerURL = "http://localhost:8000"

// clientConfig resolves the effective client configuration: YAML config file
// when present, overridden by the --server flag.
func (c *RootCommand) clientConfig(ctx context.Context) (model.ClientConfig, error) {
	cfg := model.ClientConfig{
		PollInterval:    model.DefaultPollInterval,
		PollMaxAttempts: model.DefaultPollMaxAttempts,
	}

	if _, err := os.Stat(c.ConfigPath); err == nil {
		repo := storageio.NewConfigYAMLRepository(os.DirFS(filepath.Dir(c.ConfigPath)))
		cfg, err = repo.GetConfig(ctx, filepath.Base(c.ConfigPath))
		if err != nil {
			return model.ClientConfig{}, fmt.Errorf("could not load config file %s: %w", c.ConfigPath, err)
		}
	}

	if c.ServerURL != "" {
		cfg.ServerURL = c.ServerURL
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}

	return cfg, nil
}

// repository opens the local store, creating it on first use. Passing
// --db-path=memory selects the in-memory store, nothing survives the process.
func (c *RootCommand) repository(ctx context.Context) (Repository, error) {
	if c.DBPath == "memory" {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: c.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		return repo, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// sessions returns the session manager over the given repository.
func (c *RootCommand) sessions(repo storage.Repository) (*session.Manager, error) {
	mgr, err := session.NewManager(session.ManagerConfig{
		Repository: repo,
		Logger:     c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create session manager: %w", err)
	}
	return mgr, nil
}

// expireSession drops the stored session when the backend rejects the token,
// so the next command forces a fresh login.
func (c *RootCommand) expireSession(ctx context.Context, sessions *session.Manager, err error) error {
	if !errors.Is(err, model.ErrUnauthenticated) {
		return err
	}

	if clearErr := sessions.Clear(ctx); clearErr != nil {
		c.Logger.Warningf("Could not clear expired session: %v", clearErr)
	}

	return fmt.Errorf("session expired, run 'acr login' again: %w", err)
}

// apiClient returns the backend client authenticated by the session manager.
func (c *RootCommand) apiClient(cfg model.ClientConfig, tokens client.TokenSource) (*client.HTTPClient, error) {
	cli, err := client.NewHTTPClient(client.Config{
		ServerURL:   cfg.ServerURL,
		TokenSource: tokens,
		Logger:      c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create API client: %w", err)
	}
	return cli, nil
}
