package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/asyncroom/acr/internal/app/breakpoint"
	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/app/workspaceload"
	"github.com/asyncroom/acr/internal/client/clientmock"
	"github.com/asyncroom/acr/internal/defaults"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/playback"
	"github.com/asyncroom/acr/internal/storage/storagemock"
)

func newTestApp(t *testing.T) (*App, *clientmock.MockClient) {
	t.Helper()

	transcript := defaults.Transcript()
	ctrl, err := playback.NewController(playback.ControllerConfig{Transcript: transcript})
	require.NoError(t, err)

	compiler, err := compile.NewService(compile.ServiceConfig{Client: clientmock.NewMockClient(t)})
	require.NoError(t, err)

	bps, err := breakpoint.NewService(breakpoint.ServiceConfig{
		Client:     clientmock.NewMockClient(t),
		Repository: storagemock.NewMockRepository(t),
	})
	require.NoError(t, err)

	loaderCli := clientmock.NewMockClient(t)
	loader, err := workspaceload.NewService(workspaceload.ServiceConfig{Client: loaderCli})
	require.NoError(t, err)

	app := NewApp(AppConfig{
		Workspace: &model.Workspace{
			ID:            "task-1",
			EditorContent: defaults.EditorContent,
			Transcript:    transcript,
		},
		Controller:  ctrl,
		Compiler:    compiler,
		Breakpoints: bps,
		Loader:      loader,
		Commits:     defaults.Commits(),
	})

	return app, loaderCli
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppModeKeys(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, ModeDebug, a.mode)

	a.Update(key("e"))
	assert.Equal(t, ModeEdit, a.mode)

	a.Update(key("d"))
	assert.Equal(t, ModeDebug, a.mode)
}

func TestAppPlaybackKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(key(" "))
	assert.True(t, a.controller.State().IsPlaying)

	a.Update(key(" "))
	assert.False(t, a.controller.State().IsPlaying)

	a.Update(key(" "))
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 5.0, a.controller.State().CurrentTime)

	a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0.0, a.controller.State().CurrentTime)

	a.Update(key("s"))
	st := a.controller.State()
	assert.False(t, st.IsPlaying)
	assert.Equal(t, 0.0, st.CurrentTime)
}

func TestAppVolumeKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(key("+"))
	assert.InDelta(t, 0.9, a.controller.State().Volume, 0.001)

	a.Update(key("+"))
	a.Update(key("+"))
	assert.Equal(t, 1.0, a.controller.State().Volume)

	a.Update(key("-"))
	assert.InDelta(t, 0.9, a.controller.State().Volume, 0.001)
}

func TestAppTickAdvancesOnlyWhilePlaying(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(tickMsg{})
	assert.Equal(t, 0.0, a.controller.State().CurrentTime)

	a.Update(key(" "))
	a.Update(tickMsg{})
	assert.InDelta(t, tickInterval.Seconds(), a.controller.State().CurrentTime, 0.001)
}

func TestAppPanelToggles(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(key("g"))
	assert.Equal(t, PanelGit, a.panel)

	a.Update(key("g"))
	assert.Equal(t, PanelNone, a.panel)

	a.Update(key("g"))
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, PanelNone, a.panel)
}

func TestAppCompileMessages(t *testing.T) {
	a, _ := newTestApp(t)
	a.compiling = true
	a.compileCh = make(chan tea.Msg, 1)

	a.Update(compileProgressMsg(compile.Progress{
		Attempt: 3,
		Task:    &model.Task{Status: model.TaskStatusProcessing},
	}))
	assert.Contains(t, a.compileStatus, "poll 3")

	a.Update(compileDoneMsg{task: &model.Task{VideoURL: "http://x/v.mp4"}})
	assert.False(t, a.compiling)
	assert.Contains(t, a.compileStatus, "compile done")
}

func TestAppCompileRefreshesSubtitles(t *testing.T) {
	a, loaderCli := newTestApp(t)

	lines := []model.TranscriptLine{
		{ID: "srt-1", StartTime: 0, EndTime: 4, Text: "A fresh opening"},
		{ID: "srt-2", StartTime: 4, EndTime: 9, Text: "A fresh detail"},
	}
	loaderCli.On("FetchSubtitles", mock.Anything, "http://x/s/task-1.srt").Once().Return(lines, nil)

	_, cmd := a.Update(compileDoneMsg{task: &model.Task{
		ID:       "task-1",
		Status:   model.TaskStatusCompleted,
		VideoURL: "http://x/v/task-1.mp4",
		SRTURL:   "http://x/s/task-1.srt",
	}})
	require.NotNil(t, cmd)

	assert.Equal(t, "http://x/v/task-1.mp4", a.workspace.VideoURL)
	assert.Equal(t, model.TaskStatusCompleted, a.workspace.Task.Status)

	a.Update(cmd())

	assert.Equal(t, model.Transcript{Lines: lines}, a.workspace.Transcript)
	assert.False(t, a.workspace.TranscriptFallback)

	active := a.controller.ActiveLine()
	require.NotNil(t, active)
	assert.Equal(t, "A fresh opening", active.Text)
}

func TestAppView(t *testing.T) {
	a, _ := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := a.View()
	assert.Contains(t, view, "Workspace task-1")
	assert.Contains(t, view, "Welcome to the async classroom")
	assert.Contains(t, view, "mode:debug")

	a.Update(key("e"))
	view = a.View()
	assert.Contains(t, view, "Derivative basics")
	assert.Contains(t, view, "mode:edit")

	a.Update(key("g"))
	view = a.View()
	assert.Contains(t, view, "student-fork")
}

func TestWindow(t *testing.T) {
	tests := map[string]struct {
		active, total, size int
		expStart, expEnd    int
	}{
		"Everything fits":             {active: 2, total: 5, size: 10, expStart: 0, expEnd: 5},
		"Active at the start":         {active: 0, total: 100, size: 10, expStart: 0, expEnd: 10},
		"Active in the middle":        {active: 50, total: 100, size: 10, expStart: 45, expEnd: 55},
		"Active at the end":           {active: 99, total: 100, size: 10, expStart: 90, expEnd: 100},
		"No active line":              {active: -1, total: 100, size: 10, expStart: 0, expEnd: 10},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			start, end := window(tc.active, tc.total, tc.size)
			assert.Equal(t, tc.expStart, start)
			assert.Equal(t, tc.expEnd, end)
		})
	}
}

func TestClock(t *testing.T) {
	assert.Equal(t, "0:00", clock(0))
	assert.Equal(t, "1:02", clock(62.5))
	assert.Equal(t, "10:00", clock(600))
	assert.Equal(t, "0:00", clock(-3))
}
