// Package defaults holds the bundled sample content the workspace falls back
// to when the backend returns nothing usable: a lesson transcript, a commit
// history and starter lesson code.
package defaults

import "github.com/asyncroom/acr/internal/model"

// Transcript is the bundled lesson transcript, used whenever a task has no
// subtitles or they fail to parse. Line ids do not carry the parsed-subtitle
// prefix, so both can coexist.
func Transcript() model.Transcript {
	return model.Transcript{Lines: []model.TranscriptLine{
		{ID: "t1", StartTime: 0, EndTime: 5, Text: "Welcome to the async classroom. Today's topic is the derivative."},
		{ID: "t2", StartTime: 5, EndTime: 12, Text: "First we set up a coordinate system and plot the function f(x) = x^3 - 2x."},
		{ID: "t3", StartTime: 12, EndTime: 20, Text: "Watch closely, the white curve is our function."},
		{ID: "t4", StartTime: 20, EndTime: 30, Text: "Geometrically the derivative is the slope of the tangent line at a point."},
		{ID: "t5", StartTime: 30, EndTime: 45, Text: "Many students struggle with where the tangent comes from. It is the limit of a secant."},
		{ID: "t6", StartTime: 45, EndTime: 60, Text: "Pick two points on the curve. The line through them is the secant."},
		{ID: "t7", StartTime: 60, EndTime: 90, Text: "Now let the distance dx between the points approach zero. Watch the yellow segment."},
		{ID: "t8", StartTime: 90, EndTime: 100, Text: "As dx goes to zero the secant becomes the tangent. That is the essence of the derivative: dy/dx = lim (f(x+dx) - f(x)) / dx."},
		{ID: "t9", StartTime: 100, EndTime: 120, Text: "If this step was unclear, ask the assistant or set a breakpoint at line 25 of the code."},
	}}
}

// EditorContent is shown in the editor when a task carries no source code.
const EditorContent = `# Derivative basics

Plot f(x) = x^3 - 2x on a coordinate plane.

## The tangent as a limit

1. Pick two points on the curve, draw the secant through them.
2. Slide the second point towards the first.
3. The secant converges to the tangent, its slope is the derivative.

> dy/dx = lim (f(x+dx) - f(x)) / dx
`

// Commits is the sample revision history rendered in the history panel.
func Commits() []model.Commit {
	return []model.Commit{
		{ID: "c1", Message: "feat: Add tangent line visualization", Author: "Teacher", Date: "2023-10-25", IsCurrent: true, Branch: "main"},
		{ID: "c3", Message: "docs: Update explanation text", Author: "Teacher", Date: "2023-10-23", Branch: "main"},
		{ID: "c5", Message: "fix: Animation timing issues", Author: "Teacher", Date: "2023-10-21", Branch: "main"},
		{ID: "c8", Message: "init: Initial project setup", Author: "Teacher", Date: "2023-10-20", Branch: "main"},

		{ID: "c2", Message: "fix: Adjust axis range", Author: "Student_01", Date: "2023-10-24", Branch: "student-fork"},
		{ID: "c6", Message: "style: Improve UI colors", Author: "Student_01", Date: "2023-10-21", Branch: "student-fork"},
		{ID: "c9", Message: "feat: Add dark mode support", Author: "Student_01", Date: "2023-10-19", Branch: "student-fork"},

		{ID: "c4", Message: "feat: Add interactive controls", Author: "Student_02", Date: "2023-10-22", Branch: "feature/controls"},
		{ID: "c7", Message: "feat: Add math formula renderer", Author: "Student_02", Date: "2023-10-20", Branch: "feature/controls"},
		{ID: "c10", Message: "test: Add unit tests for controls", Author: "Student_02", Date: "2023-10-18", Branch: "feature/controls"},

		{ID: "c11", Message: "experiment: Try WebGL renderer", Author: "Student_03", Date: "2023-10-17", Branch: "experiment/webgl"},
		{ID: "c12", Message: "perf: Optimize animation performance", Author: "Student_03", Date: "2023-10-16", Branch: "experiment/webgl"},

		{ID: "c13", Message: "hotfix: Critical bug in calculation", Author: "Teacher", Date: "2023-10-15", Branch: "hotfix/calculation"},
		{ID: "c14", Message: "fix: Memory leak in animation loop", Author: "Teacher", Date: "2023-10-14", Branch: "hotfix/calculation"},

		{ID: "c15", Message: "docs: Add API documentation", Author: "Student_04", Date: "2023-10-13", Branch: "docs/api"},
		{ID: "c16", Message: "docs: Update README with examples", Author: "Student_04", Date: "2023-10-12", Branch: "docs/api"},
	}
}

// CrashData is the sample non-understanding density rendered when no real
// breakpoints exist yet for a workspace.
func CrashData() []model.CrashPoint {
	return []model.CrashPoint{
		{Timestamp: 10, Count: 2},
		{Timestamp: 30, Count: 5},
		{Timestamp: 45, Count: 12},
		{Timestamp: 60, Count: 8},
		{Timestamp: 90, Count: 35},
		{Timestamp: 120, Count: 10},
		{Timestamp: 150, Count: 3},
	}
}
