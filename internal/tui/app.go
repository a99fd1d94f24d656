// Package tui implements the interactive workspace shell: a playback clock
// synchronized with the lesson transcript, the authored Markdown, the
// revision history and the breakpoint density panels.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asyncroom/acr/internal/app/breakpoint"
	"github.com/asyncroom/acr/internal/app/compile"
	"github.com/asyncroom/acr/internal/app/workspaceload"
	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/playback"
)

// Mode selects which main panel the shell shows.
type Mode int

const (
	// ModeDebug is the student view: transcript following the playback.
	ModeDebug Mode = iota
	// ModeEdit is the teacher view: the authored Markdown with the derived
	// current line highlighted.
	ModeEdit
)

// Panel is an overlay panel on top of the current mode.
type Panel int

const (
	PanelNone Panel = iota
	PanelGit
	PanelDensity
)

// tickInterval is the playback clock resolution.
const tickInterval = 100 * time.Millisecond

// AppConfig is the configuration of the workspace shell.
type AppConfig struct {
	Workspace   *model.Workspace
	Controller  *playback.Controller
	Compiler    *compile.Service
	Breakpoints *breakpoint.Service
	Loader      *workspaceload.Service
	Commits     []model.Commit
	// SecondsPerLine tunes the editor line heuristic.
	SecondsPerLine float64
	Logger         log.Logger
}

// App is the workspace shell bubbletea model.
type App struct {
	workspace   *model.Workspace
	controller  *playback.Controller
	compiler    *compile.Service
	breakpoints *breakpoint.Service
	loader      *workspaceload.Service
	commits     []model.Commit
	secsPerLine float64
	logger      log.Logger

	mode  Mode
	panel Panel

	compiling     bool
	compileStatus string
	compileCancel context.CancelFunc
	compileCh     chan tea.Msg
	spinner       spinner.Model

	density []model.CrashPoint
	notice  string

	width  int
	height int
}

// NewApp creates a new workspace shell.
func NewApp(cfg AppConfig) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Noop
	}
	secs := cfg.SecondsPerLine
	if secs <= 0 {
		secs = playback.DefaultSecondsPerLine
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		workspace:   cfg.Workspace,
		controller:  cfg.Controller,
		compiler:    cfg.Compiler,
		breakpoints: cfg.Breakpoints,
		loader:      cfg.Loader,
		commits:     cfg.Commits,
		secsPerLine: secs,
		logger:      logger,
		mode:        ModeDebug,
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tick()
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type compileProgressMsg compile.Progress

type compileDoneMsg struct {
	task *model.Task
	err  error
}

type breakpointMsg struct {
	queued bool
	err    error
}

type transcriptMsg struct {
	transcript model.Transcript
	fallback   bool
}

type densityMsg struct {
	points []model.CrashPoint
	err    error
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		a.controller.Advance(tickInterval.Seconds())
		return a, tick()

	case compileProgressMsg:
		a.compileStatus = progressLine(compile.Progress(msg))
		return a, a.waitCompile()

	case compileDoneMsg:
		a.compiling = false
		a.compileCancel = nil
		a.compileCh = nil
		if msg.err != nil {
			a.compileStatus = errorStyle.Render("compile: " + msg.err.Error())
			return a, nil
		}
		a.compileStatus = successStyle.Render("compile done: " + msg.task.VideoURL)
		// The fresh compile replaces the lesson media inside the open shell.
		a.workspace.Task = *msg.task
		a.workspace.VideoURL = msg.task.VideoURL
		if msg.task.Code != "" {
			a.workspace.EditorContent = msg.task.Code
		}
		return a, a.refreshTranscript(*msg.task)

	case transcriptMsg:
		a.workspace.Transcript = msg.transcript
		a.workspace.TranscriptFallback = msg.fallback
		a.controller.SetTranscript(msg.transcript)
		return a, nil

	case breakpointMsg:
		switch {
		case msg.err != nil:
			a.notice = errorStyle.Render("breakpoint: " + msg.err.Error())
		case msg.queued:
			a.notice = noticeStyle.Render("breakpoint queued locally")
		default:
			a.notice = successStyle.Render("breakpoint recorded")
		}
		return a, nil

	case spinner.TickMsg:
		if !a.compiling {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case densityMsg:
		if msg.err != nil {
			a.notice = errorStyle.Render("density: " + msg.err.Error())
			return a, nil
		}
		a.density = msg.points
		a.panel = PanelDensity
		return a, nil
	}

	return a, nil
}

func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if a.compileCancel != nil {
			a.compileCancel()
		}
		return a, tea.Quit

	case "e":
		a.mode = ModeEdit
		return a, nil

	case "d":
		a.mode = ModeDebug
		return a, nil

	case " ":
		a.controller.TogglePlay()
		return a, nil

	case "left":
		a.controller.StepBack()
		return a, nil

	case "right":
		a.controller.StepForward()
		return a, nil

	case "r":
		a.controller.Restart()
		return a, nil

	case "s":
		a.controller.Stop()
		return a, nil

	case "+", "=":
		st := a.controller.State()
		a.controller.SetVolume(st.Volume + 0.1)
		return a, nil

	case "-":
		st := a.controller.State()
		a.controller.SetVolume(st.Volume - 0.1)
		return a, nil

	case "b":
		return a, a.captureBreakpoint()

	case "c":
		if a.compiling {
			return a, nil
		}
		return a, a.startCompile()

	case "g":
		if a.panel == PanelGit {
			a.panel = PanelNone
		} else {
			a.panel = PanelGit
		}
		return a, nil

	case "x":
		if a.panel == PanelDensity {
			a.panel = PanelNone
			return a, nil
		}
		return a, a.loadDensity()

	case "esc":
		if a.compiling && a.compileCancel != nil {
			a.compileCancel()
			return a, nil
		}
		a.panel = PanelNone
		a.notice = ""
		return a, nil
	}

	return a, nil
}

// captureBreakpoint records a breakpoint at the current playback position,
// carrying the active transcript line when there is one.
func (a *App) captureBreakpoint() tea.Cmd {
	st := a.controller.State()
	line := a.controller.ActiveLine()

	return func() tea.Msg {
		res, err := a.breakpoints.Capture(context.Background(), breakpoint.CaptureOptions{
			WorkspaceID: a.workspace.ID,
			At:          st.CurrentTime,
			ActiveLine:  line,
		})
		if err != nil {
			return breakpointMsg{err: err}
		}
		return breakpointMsg{queued: res.Queued}
	}
}

// startCompile submits the editor buffer and streams poll progress into the
// shell until the task finishes or esc cancels it.
func (a *App) startCompile() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	a.compileCancel = cancel
	a.compiling = true
	a.compileStatus = "compiling…"

	ch := make(chan tea.Msg, 16)
	a.compileCh = ch

	content := a.workspace.EditorContent
	go func() {
		task, err := a.compiler.SubmitAndWatch(ctx, content, func(p compile.Progress) {
			ch <- compileProgressMsg(p)
		})
		ch <- compileDoneMsg{task: task, err: err}
	}()

	return tea.Batch(a.waitCompile(), a.spinner.Tick)
}

// refreshTranscript reloads the subtitles produced by a finished compile and
// swaps them into the playback controller.
func (a *App) refreshTranscript(task model.Task) tea.Cmd {
	if a.loader == nil {
		return nil
	}
	return func() tea.Msg {
		transcript, fallback := a.loader.Transcript(context.Background(), task)
		return transcriptMsg{transcript: transcript, fallback: fallback}
	}
}

func (a *App) waitCompile() tea.Cmd {
	ch := a.compileCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return <-ch
	}
}

func (a *App) loadDensity() tea.Cmd {
	return func() tea.Msg {
		points, err := a.breakpoints.Density(context.Background(), a.workspace.ID, 0)
		return densityMsg{points: points, err: err}
	}
}
