package printer

import "github.com/asyncroom/acr/internal/model"

// Printer knows how to print classroom information in different formats.
type Printer interface {
	PrintCourseList(courses []model.Course) error
	PrintTask(task model.Task) error
	PrintSession(session model.Session) error
	PrintBreakpoints(bps []model.QueuedBreakpoint) error
	PrintCommitLog(commits []model.Commit) error
	PrintDensity(points []model.CrashPoint) error
	PrintMessage(msg string) error
}
