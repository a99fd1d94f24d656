package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/subtitle"
)

// TablePrinter prints classroom information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintCourseList prints the course catalog in a table format.
func (t *TablePrinter) PrintCourseList(courses []model.Course) error {
	if len(courses) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tDURATION\tCREATED")

	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Author, c.Duration, TimeAgo(c.CreatedAt))
	}

	return nil
}

// PrintTask prints a detailed task status.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:         %s\n", task.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", task.Status)

	if task.Message != "" {
		fmt.Fprintf(t.writer, "Message:    %s\n", task.Message)
	}
	if task.VideoURL != "" {
		fmt.Fprintf(t.writer, "Video:      %s\n", task.VideoURL)
	}
	if task.SRTURL != "" {
		fmt.Fprintf(t.writer, "Subtitles:  %s\n", task.SRTURL)
	}

	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(task.CreatedAt))

	return nil
}

// PrintSession prints the current session.
func (t *TablePrinter) PrintSession(session model.Session) error {
	fmt.Fprintf(t.writer, "User:       %s\n", session.Username)
	fmt.Fprintf(t.writer, "Server:     %s\n", session.ServerURL)
	fmt.Fprintf(t.writer, "Logged in:  %s\n", FormatTimestamp(session.CreatedAt))
	return nil
}

// PrintBreakpoints prints queued breakpoints in a table format.
func (t *TablePrinter) PrintBreakpoints(bps []model.QueuedBreakpoint) error {
	if len(bps) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "WORKSPACE\tAT\tTEXT\tSTATUS\tCREATED")

	for _, bp := range bps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			bp.WorkspaceID,
			subtitle.FormatTimestamp(bp.Breakpoint.StartTime),
			truncate(bp.Breakpoint.Text, 40),
			bp.Status,
			TimeAgo(bp.CreatedAt),
		)
	}

	return nil
}

// PrintCommitLog prints the revision history grouped by branch.
func (t *TablePrinter) PrintCommitLog(commits []model.Commit) error {
	if len(commits) == 0 {
		return nil
	}

	branches, grouped := model.CommitsByBranch(commits)
	for _, branch := range branches {
		fmt.Fprintf(t.writer, "%s\n", branch)
		for _, c := range grouped[branch] {
			marker := " "
			if c.IsCurrent {
				marker = "*"
			}
			fmt.Fprintf(t.writer, " %s %s  %s  %s (%s)\n", marker, c.ID, c.Date, c.Message, c.Author)
		}
	}

	return nil
}

// densityBarWidth is the width of the largest histogram bar.
const densityBarWidth = 40

// PrintDensity prints the non-understanding histogram as horizontal bars.
func (t *TablePrinter) PrintDensity(points []model.CrashPoint) error {
	if len(points) == 0 {
		return nil
	}

	max := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	for _, p := range points {
		width := p.Count * densityBarWidth / max
		if width == 0 && p.Count > 0 {
			width = 1
		}
		fmt.Fprintf(tw, "%s\t%s %d\n",
			subtitle.FormatTimestamp(p.Timestamp),
			strings.Repeat("█", width),
			p.Count,
		)
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
