// Package client implements the REST client for the classroom backend: auth,
// task listing, compile submission, breakpoint creation and subtitle fetch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/subtitle"
)

// TokenSource provides the bearer token for authenticated calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

//go:generate mockery --case underscore --output clientmock --outpkg clientmock --name TokenSource

// Client is the interface the application services use to talk to the
// classroom backend.
type Client interface {
	Login(ctx context.Context, username, password string) (*model.Session, string, error)
	ListTasks(ctx context.Context, offset, limit int) (*model.TaskPage, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	SubmitCompile(ctx context.Context, content string) (*model.Task, error)
	CreateBreakpoint(ctx context.Context, workspaceID string, bp model.Breakpoint) error
	FetchSubtitles(ctx context.Context, srtURL string) ([]model.TranscriptLine, error)
	ResolveURL(ref string) string
}

//go:generate mockery --case underscore --output clientmock --outpkg clientmock --name Client

// Config is the configuration for the HTTP client.
type Config struct {
	ServerURL   string
	TokenSource TokenSource
	HTTPClient  *http.Client
	Logger      log.Logger
}

func (c *Config) defaults() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server url is required")
	}
	if _, err := url.Parse(c.ServerURL); err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "client.HTTP"})
	return nil
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	serverURL  string
	tokens     TokenSource
	httpClient *http.Client
	logger     log.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a new backend client.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &HTTPClient{
		serverURL:  strings.TrimRight(cfg.ServerURL, "/"),
		tokens:     cfg.TokenSource,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// Login authenticates against the backend and returns the session plus the
// bearer token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*model.Session, string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, "", fmt.Errorf("could not encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp loginResponse
	if err := c.do(req, &resp); err != nil {
		return nil, "", fmt.Errorf("login failed: %w", err)
	}

	c.logger.Debugf("Logged in as %s", resp.Username)

	session := &model.Session{
		Username:  resp.Username,
		ServerURL: c.serverURL,
		CreatedAt: time.Now().UTC(),
	}
	return session, resp.AccessToken, nil
}

type taskResponse struct {
	TaskID    string  `json:"task_id"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	VideoURL  string  `json:"video_url"`
	SRTURL    string  `json:"srt_url"`
	Code      string  `json:"code"`
	CreatedAt float64 `json:"created_at"`
}

func (t taskResponse) toModel() model.Task {
	return model.Task{
		ID:        t.TaskID,
		Status:    model.TaskStatus(t.Status),
		Message:   t.Message,
		VideoURL:  t.VideoURL,
		SRTURL:    t.SRTURL,
		Code:      t.Code,
		CreatedAt: time.Unix(int64(t.CreatedAt), 0).UTC(),
	}
}

type tasksResponse struct {
	Total  int            `json:"total"`
	Count  int            `json:"count"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
	Tasks  []taskResponse `json:"tasks"`
}

// ListTasks returns a page of the user's tasks. Requires authentication.
func (c *HTTPClient) ListTasks(ctx context.Context, offset, limit int) (*model.TaskPage, error) {
	u, err := url.Parse(c.serverURL + "/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("could not build url: %w", err)
	}
	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	var resp tasksResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	page := &model.TaskPage{
		Total:  resp.Total,
		Count:  resp.Count,
		Offset: resp.Offset,
		Limit:  resp.Limit,
		Tasks:  make([]model.Task, 0, len(resp.Tasks)),
	}
	for _, t := range resp.Tasks {
		page.Tasks = append(page.Tasks, t.toModel())
	}

	return page, nil
}

// GetTask returns a task snapshot. Also used as the workspace-load endpoint,
// where the `code` field carries the authored Markdown.
func (c *HTTPClient) GetTask(ctx context.Context, id string) (*model.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/api/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	var resp taskResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("could not get task %s: %w", id, err)
	}

	task := resp.toModel()
	return &task, nil
}

// SubmitCompile submits authored content as a raw text body and returns the
// pending task created for it.
func (c *HTTPClient) SubmitCompile(ctx context.Context, content string) (*model.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/compile", strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	var resp taskResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("compile submission failed: %w", err)
	}

	c.logger.Debugf("Submitted compile task %s", resp.TaskID)

	task := resp.toModel()
	return &task, nil
}

type breakpointRequest struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

// CreateBreakpoint submits a breakpoint for a workspace. Times go on the
// wire as SRT timestamps.
func (c *HTTPClient) CreateBreakpoint(ctx context.Context, workspaceID string, bp model.Breakpoint) error {
	if err := bp.Validate(); err != nil {
		return fmt.Errorf("invalid breakpoint: %w", err)
	}

	body, err := json.Marshal(breakpointRequest{
		StartTime:   subtitle.FormatTimestamp(bp.StartTime),
		EndTime:     subtitle.FormatTimestamp(bp.EndTime),
		Text:        bp.Text,
		Description: bp.Description,
	})
	if err != nil {
		return fmt.Errorf("could not encode breakpoint: %w", err)
	}

	u := c.serverURL + "/api/tasks/" + url.PathEscape(workspaceID) + "/breakpoints"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("could not create breakpoint: %w", err)
	}

	return nil
}

// FetchSubtitles downloads and parses the subtitle resource. Relative URLs
// are resolved against the server base URL.
func (c *HTTPClient) FetchSubtitles(ctx context.Context, srtURL string) ([]model.TranscriptLine, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ResolveURL(srtURL), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network failure, check your connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("subtitle fetch failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read subtitle body: %w", err)
	}

	lines, err := subtitle.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("could not parse subtitles: %w", err)
	}

	return lines, nil
}

// ResolveURL resolves a possibly server-relative reference (like the
// `video_url` and `srt_url` fields) into an absolute URL.
func (c *HTTPClient) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.serverURL + ref
}

const maxErrorBody = 4 * 1024

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return fmt.Errorf("no token source configured: %w", model.ErrUnauthenticated)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("could not get token: %w", err)
	}
	if token == "" {
		return fmt.Errorf("missing bearer token: %w", model.ErrUnauthenticated)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// do executes the request, maps the error taxonomy and decodes the JSON
// response into out when out is not nil.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network failure, check your connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("session expired: %w", model.ErrUnauthenticated)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}
