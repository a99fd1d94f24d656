package model

import "time"

// Client configuration defaults.
const (
	DefaultPollInterval    = 2 * time.Second
	DefaultPollMaxAttempts = 60
)

// ClientConfig holds the user-tunable knobs of the CLI.
type ClientConfig struct {
	ServerURL       string
	AssistantURL    string
	PollInterval    time.Duration
	PollMaxAttempts int
	SecondsPerLine  float64
}
