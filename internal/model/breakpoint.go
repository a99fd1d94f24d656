package model

import (
	"fmt"
	"time"
)

// FallbackBreakpointText is used when no transcript line covers the capture
// time. Mirrors the wording students see in the workspace.
const FallbackBreakpointText = "student indicated non-understanding here"

// Breakpoint is a student-submitted marker for a moment of confusion in the
// lesson, not a debugger breakpoint. Times are seconds; the wire format
// serializes them as SRT timestamps.
type Breakpoint struct {
	StartTime   float64
	EndTime     float64
	Text        string
	Description string
}

// Validate validates the breakpoint.
func (b Breakpoint) Validate() error {
	if b.StartTime < 0 {
		return fmt.Errorf("start time must not be negative: %w", ErrNotValid)
	}
	if b.EndTime < b.StartTime {
		return fmt.Errorf("end time must not precede start time: %w", ErrNotValid)
	}
	if b.Text == "" {
		return fmt.Errorf("text is required: %w", ErrNotValid)
	}
	return nil
}

// QueuedBreakpointStatus represents the delivery state of a locally queued
// breakpoint.
type QueuedBreakpointStatus string

const (
	// QueuedBreakpointStatusPending means the breakpoint still needs delivery.
	QueuedBreakpointStatusPending QueuedBreakpointStatus = "pending"
	// QueuedBreakpointStatusSent means the backend accepted the breakpoint.
	QueuedBreakpointStatusSent QueuedBreakpointStatus = "sent"
)

// QueuedBreakpoint is a breakpoint captured locally. Submission is
// best-effort at capture time; failed submissions stay queued so a later
// flush can deliver them at least once.
type QueuedBreakpoint struct {
	ID          string
	WorkspaceID string
	Breakpoint  Breakpoint
	Status      QueuedBreakpointStatus
	CreatedAt   time.Time
}

// Validate validates the queued breakpoint.
func (q QueuedBreakpoint) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if q.WorkspaceID == "" {
		return fmt.Errorf("workspace id is required: %w", ErrNotValid)
	}
	switch q.Status {
	case QueuedBreakpointStatusPending, QueuedBreakpointStatusSent:
	default:
		return fmt.Errorf("unknown status %q: %w", q.Status, ErrNotValid)
	}
	return q.Breakpoint.Validate()
}

// CrashPoint is one bucket of breakpoint density over the lesson timeline,
// rendered by the confusion analysis panel.
type CrashPoint struct {
	Timestamp float64
	Count     int
}
