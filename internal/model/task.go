package model

import (
	"time"
)

// TaskStatus represents the state of a compile task on the backend.
type TaskStatus string

const (
	// TaskStatusPending indicates the task is queued and not picked up yet.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusProcessing indicates the backend is compiling the lesson.
	TaskStatusProcessing TaskStatus = "processing"
	// TaskStatusCompleted indicates the compile finished and media URLs are set.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the compile failed.
	TaskStatusFailed TaskStatus = "failed"
)

// IsTerminal reports whether the status will not change anymore.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Task is a backend compile job that turns authored Markdown into a lesson
// video plus subtitles. The client only ever reads snapshots of it, the
// backend owns its lifecycle.
type Task struct {
	ID        string
	Status    TaskStatus
	Message   string
	VideoURL  string
	SRTURL    string
	Code      string
	CreatedAt time.Time
}

// TaskPage is a single page of a task listing.
type TaskPage struct {
	Total  int
	Count  int
	Offset int
	Limit  int
	Tasks  []Task
}
