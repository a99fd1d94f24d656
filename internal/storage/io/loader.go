package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asyncroom/acr/internal/model"
)

// ConfigYAMLRepository loads client configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a client configuration from a YAML file and returns a
// validated domain model. Missing optional fields get defaults.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.ClientConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.ClientConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.ClientConfig{}, ctx.Err()
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.ClientConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return model.ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// ClientConfig represents the YAML structure for client configuration.
type ClientConfig struct {
	ServerURL       string  `yaml:"server_url"`
	AssistantURL    string  `yaml:"assistant_url"`
	PollIntervalMS  int     `yaml:"poll_interval_ms"`
	PollMaxAttempts int     `yaml:"poll_max_attempts"`
	SecondsPerLine  float64 `yaml:"seconds_per_line"`
}

func (c ClientConfig) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.PollIntervalMS < 0 {
		return fmt.Errorf("poll_interval_ms must not be negative, got: %d", c.PollIntervalMS)
	}
	if c.PollMaxAttempts < 0 {
		return fmt.Errorf("poll_max_attempts must not be negative, got: %d", c.PollMaxAttempts)
	}
	if c.SecondsPerLine < 0 {
		return fmt.Errorf("seconds_per_line must not be negative, got: %f", c.SecondsPerLine)
	}
	return nil
}

func (c ClientConfig) toModel() model.ClientConfig {
	cfg := model.ClientConfig{
		ServerURL:       c.ServerURL,
		AssistantURL:    c.AssistantURL,
		PollInterval:    time.Duration(c.PollIntervalMS) * time.Millisecond,
		PollMaxAttempts: c.PollMaxAttempts,
		SecondsPerLine:  c.SecondsPerLine,
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = model.DefaultPollInterval
	}
	if cfg.PollMaxAttempts == 0 {
		cfg.PollMaxAttempts = model.DefaultPollMaxAttempts
	}

	return cfg
}
