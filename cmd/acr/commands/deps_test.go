package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfigResolution(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("No config file should use the built-in defaults", func(t *testing.T) {
		c := &RootCommand{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}

		cfg, err := c.clientConfig(context.Background())

		require.NoError(t, err)
		assert.Equal(t, defaultServerURL, cfg.ServerURL)
		assert.Equal(t, 2*time.Second, cfg.PollInterval)
		assert.Equal(t, 60, cfg.PollMaxAttempts)
	})

	t.Run("A config file should set the server URL", func(t *testing.T) {
		path := writeConfig(t, "server_url: https://classroom.example.com\npoll_interval_ms: 500\n")
		c := &RootCommand{ConfigPath: path}

		cfg, err := c.clientConfig(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://classroom.example.com", cfg.ServerURL)
		assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	})

	t.Run("The server flag should override the config file", func(t *testing.T) {
		path := writeConfig(t, "server_url: https://classroom.example.com\n")
		c := &RootCommand{ConfigPath: path, ServerURL: "http://localhost:9999"}

		cfg, err := c.clientConfig(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999", cfg.ServerURL)
	})

	t.Run("A broken config file should fail", func(t *testing.T) {
		path := writeConfig(t, "poll_interval_ms: -5\n")
		c := &RootCommand{ConfigPath: path}

		_, err := c.clientConfig(context.Background())

		assert.Error(t, err)
	})
}
