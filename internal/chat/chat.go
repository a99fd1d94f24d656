// Package chat talks to the learning assistant endpoint. The assistant is an
// opaque remote service, the client only frames questions and returns
// answers.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/asyncroom/acr/internal/log"
)

// Question is a single turn sent to the assistant.
type Question struct {
	Prompt string
	// Context is optional lesson material attached to the prompt, like the
	// transcript line the student is stuck on.
	Context string
}

// Assistant answers student questions.
type Assistant interface {
	Ask(ctx context.Context, q Question) (string, error)
}

//go:generate mockery --case underscore --output chatmock --outpkg chatmock --name Assistant

// Config is the configuration for the HTTP assistant client.
type Config struct {
	AssistantURL string
	HTTPClient   *http.Client
	Logger       log.Logger
}

func (c *Config) defaults() error {
	if c.AssistantURL == "" {
		return fmt.Errorf("assistant url is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "chat.HTTP"})
	return nil
}

// HTTPAssistant is the HTTP implementation of Assistant.
type HTTPAssistant struct {
	url        string
	httpClient *http.Client
	logger     log.Logger
}

var _ Assistant = (*HTTPAssistant)(nil)

// NewHTTPAssistant creates a new assistant client.
func NewHTTPAssistant(cfg Config) (*HTTPAssistant, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &HTTPAssistant{
		url:        strings.TrimRight(cfg.AssistantURL, "/"),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

type askRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// Ask sends the question and returns the assistant's answer.
func (a *HTTPAssistant) Ask(ctx context.Context, q Question) (string, error) {
	body, err := json.Marshal(askRequest{Question: q.Prompt, Context: q.Context})
	if err != nil {
		return "", fmt.Errorf("could not encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", fmt.Errorf("assistant returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var ar askResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("could not decode answer: %w", err)
	}

	a.logger.Debugf("Assistant answered %d chars", len(ar.Answer))

	return ar.Answer, nil
}
