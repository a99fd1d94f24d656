package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/subtitle"
)

// JSONPrinter prints classroom information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// courseItem represents a course in the list output.
type courseItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Duration  string    `json:"duration"`
	VideoURL  string    `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// taskOutput represents the full task status output.
type taskOutput struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	SRTURL    string    `json:"srt_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// sessionOutput represents the session status output.
type sessionOutput struct {
	Username  string    `json:"username"`
	ServerURL string    `json:"server_url"`
	CreatedAt time.Time `json:"created_at"`
}

// breakpointItem represents a queued breakpoint in the list output.
type breakpointItem struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	At          string    `json:"at"`
	Text        string    `json:"text"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// commitItem represents a commit in the log output.
type commitItem struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Branch    string `json:"branch"`
	IsCurrent bool   `json:"is_current"`
}

// densityItem represents one histogram bucket.
type densityItem struct {
	Timestamp float64 `json:"timestamp"`
	Count     int     `json:"count"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintCourseList prints the course catalog in JSON format.
func (j *JSONPrinter) PrintCourseList(courses []model.Course) error {
	items := make([]courseItem, len(courses))
	for i, c := range courses {
		items[i] = courseItem{
			ID:        c.ID,
			Title:     c.Title,
			Author:    c.Author,
			Duration:  c.Duration,
			VideoURL:  c.VideoURL,
			CreatedAt: c.CreatedAt.UTC(),
		}
	}
	return j.encode(items)
}

// PrintTask prints a detailed task status in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(taskOutput{
		ID:        task.ID,
		Status:    string(task.Status),
		Message:   task.Message,
		VideoURL:  task.VideoURL,
		SRTURL:    task.SRTURL,
		CreatedAt: task.CreatedAt.UTC(),
	})
}

// PrintSession prints the current session in JSON format.
func (j *JSONPrinter) PrintSession(session model.Session) error {
	return j.encode(sessionOutput{
		Username:  session.Username,
		ServerURL: session.ServerURL,
		CreatedAt: session.CreatedAt.UTC(),
	})
}

// PrintBreakpoints prints queued breakpoints in JSON format.
func (j *JSONPrinter) PrintBreakpoints(bps []model.QueuedBreakpoint) error {
	items := make([]breakpointItem, len(bps))
	for i, bp := range bps {
		items[i] = breakpointItem{
			ID:          bp.ID,
			WorkspaceID: bp.WorkspaceID,
			At:          subtitle.FormatTimestamp(bp.Breakpoint.StartTime),
			Text:        bp.Breakpoint.Text,
			Status:      string(bp.Status),
			CreatedAt:   bp.CreatedAt.UTC(),
		}
	}
	return j.encode(items)
}

// PrintCommitLog prints the revision history in JSON format.
func (j *JSONPrinter) PrintCommitLog(commits []model.Commit) error {
	items := make([]commitItem, len(commits))
	for i, c := range commits {
		items[i] = commitItem{
			ID:        c.ID,
			Message:   c.Message,
			Author:    c.Author,
			Date:      c.Date,
			Branch:    c.Branch,
			IsCurrent: c.IsCurrent,
		}
	}
	return j.encode(items)
}

// PrintDensity prints the non-understanding histogram in JSON format.
func (j *JSONPrinter) PrintDensity(points []model.CrashPoint) error {
	items := make([]densityItem, len(points))
	for i, p := range points {
		items[i] = densityItem{Timestamp: p.Timestamp, Count: p.Count}
	}
	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}
