package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/playback"
)

var _ tea.Model = (*App)(nil)

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Workspace "+a.workspace.ID) + "\n")

	switch a.panel {
	case PanelGit:
		b.WriteString(a.renderGit())
	case PanelDensity:
		b.WriteString(a.renderDensity())
	default:
		if a.mode == ModeEdit {
			b.WriteString(a.renderEditor())
		} else {
			b.WriteString(a.renderTranscript())
		}
	}

	b.WriteString("\n" + a.renderStatusBar())
	b.WriteString("\n" + helpStyle.Render("space play/pause · ←/→ step · b breakpoint · c compile · e/d mode · g git · x density · q quit"))

	return b.String()
}

// visibleLines bounds list panels so they fit the terminal.
func (a *App) visibleLines() int {
	// Title, status bar, help line and margins.
	const chrome = 6
	if a.height <= chrome {
		return 10
	}
	return a.height - chrome
}

// renderTranscript renders the student view: the transcript with the active
// line highlighted and kept in view.
func (a *App) renderTranscript() string {
	lines := a.workspace.Transcript.Lines
	if len(lines) == 0 {
		return mutedLineStyle.Render("no transcript")
	}

	active := a.controller.ActiveIndex()
	start, end := window(active, len(lines), a.visibleLines())

	var b strings.Builder
	if a.workspace.TranscriptFallback {
		b.WriteString(noticeStyle.Render("bundled transcript (subtitles unavailable)") + "\n")
	}
	for i := start; i < end; i++ {
		l := lines[i]
		ts := timestampStyle.Render(fmt.Sprintf("%6s", clock(l.StartTime)))
		if i == active {
			b.WriteString(fmt.Sprintf("%s  %s\n", ts, activeLineStyle.Render("▸ "+l.Text)))
		} else {
			b.WriteString(fmt.Sprintf("%s    %s\n", ts, normalLineStyle.Render(l.Text)))
		}
	}
	return b.String()
}

// renderEditor renders the teacher view: the authored Markdown with the line
// derived from the playback position highlighted.
func (a *App) renderEditor() string {
	content := strings.Split(a.workspace.EditorContent, "\n")
	st := a.controller.State()
	current := playback.EditorLine(st.CurrentTime, len(content), a.secsPerLine)

	start, end := window(current-1, len(content), a.visibleLines())

	var b strings.Builder
	for i := start; i < end; i++ {
		num := timestampStyle.Render(fmt.Sprintf("%3d", i+1))
		if i+1 == current {
			b.WriteString(fmt.Sprintf("%s %s\n", num, activeLineStyle.Render("▸ "+content[i])))
		} else {
			b.WriteString(fmt.Sprintf("%s   %s\n", num, normalLineStyle.Render(content[i])))
		}
	}
	return b.String()
}

// renderGit renders the revision history grouped by branch lanes.
func (a *App) renderGit() string {
	if len(a.commits) == 0 {
		return mutedLineStyle.Render("no history")
	}

	branches, grouped := model.CommitsByBranch(a.commits)

	var b strings.Builder
	for _, branch := range branches {
		b.WriteString(branchStyle.Render(branch) + "\n")
		for _, c := range grouped[branch] {
			line := fmt.Sprintf("  %s  %s  %s (%s)", c.ID, c.Date, c.Message, c.Author)
			if c.IsCurrent {
				b.WriteString(currentCommitStyle.Render("*"+line[1:]) + "\n")
			} else {
				b.WriteString(normalLineStyle.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

// densityBarWidth is the width of the largest density bar.
const densityBarWidth = 40

// renderDensity renders the breakpoint density bar chart over the timeline.
func (a *App) renderDensity() string {
	if len(a.density) == 0 {
		return mutedLineStyle.Render("no breakpoints recorded yet")
	}

	max := 0
	for _, p := range a.density {
		if p.Count > max {
			max = p.Count
		}
	}

	var b strings.Builder
	for _, p := range a.density {
		width := p.Count * densityBarWidth / max
		if width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("%6s  %s %d\n",
			clock(p.Timestamp),
			barStyle.Render(strings.Repeat("█", width)),
			p.Count,
		))
	}
	return b.String()
}

func (a *App) renderStatusBar() string {
	st := a.controller.State()

	mode := "debug"
	if a.mode == ModeEdit {
		mode = "edit"
	}

	parts := []string{
		fmt.Sprintf("%s %s", PlayIcon(st.IsPlaying), clock(st.CurrentTime)),
		"mode:" + mode,
		fmt.Sprintf("vol:%.0f%%", st.Volume*100),
	}
	if a.compiling {
		parts = append(parts, a.spinner.View()+a.compileStatus)
	} else if a.compileStatus != "" {
		parts = append(parts, a.compileStatus)
	}
	if a.notice != "" {
		parts = append(parts, a.notice)
	}

	return statusBarStyle.Render(strings.Join(parts, "  │  "))
}

// progressLine formats one compile poll attempt for the status bar.
func progressLine(p compile.Progress) string {
	if p.Err != nil {
		return noticeStyle.Render(fmt.Sprintf("compiling… poll %d failed", p.Attempt))
	}
	return fmt.Sprintf("compiling… %s (poll %d)", p.Task.Status, p.Attempt)
}

// clock formats seconds as M:SS.
func clock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// window returns the [start, end) slice bounds keeping the active index
// visible in a panel of the given size.
func window(active, total, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	if active < 0 {
		active = 0
	}

	start := active - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}
