// Package playback owns the workspace playback clock. The controller is the
// single source of truth for "current time" and "is playing"; every panel
// reads snapshots from it and mutates it only through its setters.
package playback

import (
	"math"
	"sync"

	"github.com/asyncroom/acr/internal/log"
	"github.com/asyncroom/acr/internal/model"
)

// DefaultVolume is the volume a fresh controller starts with.
const DefaultVolume = 0.8

// ControllerConfig is the configuration for the playback controller.
type ControllerConfig struct {
	Transcript model.Transcript
	Logger     log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "playback.Controller"})
	return nil
}

// Controller is a two-state (paused/playing) machine over the playback
// clock. All transitions are synchronous; the mutex only guards against the
// UI event loop and the tick timer racing each other.
type Controller struct {
	mu         sync.RWMutex
	state      model.PlaybackState
	transcript model.Transcript
	logger     log.Logger
}

// NewController creates a new playback controller in paused state at t=0.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	return &Controller{
		state:      model.PlaybackState{Volume: DefaultVolume},
		transcript: cfg.Transcript,
		logger:     cfg.Logger,
	}, nil
}

// State returns a snapshot of the playback state.
func (c *Controller) State() model.PlaybackState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Play transitions to playing. Idempotent.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = true
}

// Pause transitions to paused. Idempotent.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = false
}

// TogglePlay flips between playing and paused.
func (c *Controller) TogglePlay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsPlaying = !c.state.IsPlaying
}

// Seek moves the clock to t (clamped at zero) keeping the play state.
func (c *Controller) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentTime = math.Max(0, t)
}

// Stop pauses playback. The clock keeps its position; callers wanting a full
// reset follow up with Seek(0).
func (c *Controller) Stop() {
	c.Pause()
}

// Restart rewinds to the beginning and pauses.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentTime = 0
	c.state.IsPlaying = false
}

// Advance moves the clock forward by dt seconds when playing. No-op while
// paused, so a stray late tick after Pause cannot move the clock.
func (c *Controller) Advance(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsPlaying {
		return
	}
	c.state.CurrentTime += dt
}

// SetVolume sets the volume clamped to [0, 1].
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Volume = math.Min(1, math.Max(0, v))
}

// SetTranscript replaces the transcript wholesale, e.g. after a compile
// produced a fresh subtitle resource.
func (c *Controller) SetTranscript(tr model.Transcript) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = tr
}

// Transcript returns the current transcript.
func (c *Controller) Transcript() model.Transcript {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transcript
}

// ActiveLine returns the transcript line active at the current time, or nil.
func (c *Controller) ActiveLine() *model.TranscriptLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transcript.ActiveLine(c.state.CurrentTime)
}

// ActiveIndex returns the index of the active transcript line, or -1.
func (c *Controller) ActiveIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.transcript.ActiveIndex(c.state.CurrentTime)
}

// StepForward seeks to the start of the next transcript line keeping the
// play state.
func (c *Controller) StepForward() {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.transcript.NextLine(c.state.CurrentTime)
	if line == nil {
		return
	}
	c.state.CurrentTime = line.StartTime
}

// StepBack seeks to the start of the previous transcript line.
func (c *Controller) StepBack() {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := c.transcript.PrevLine(c.state.CurrentTime)
	if line == nil {
		return
	}
	c.state.CurrentTime = line.StartTime
}

// DefaultSecondsPerLine is the stand-in ratio between playback time and
// authored source lines. It is an approximation, not a real source map:
// the compile backend does not expose line timings yet, so the editor
// highlight assumes a constant reading pace.
const DefaultSecondsPerLine = 6.0

// EditorLine derives the authored source line to highlight for playback time
// t, clamped to [1, totalLines]. secondsPerLine <= 0 falls back to
// DefaultSecondsPerLine.
func EditorLine(t float64, totalLines int, secondsPerLine float64) int {
	if totalLines < 1 {
		return 1
	}
	if secondsPerLine <= 0 {
		secondsPerLine = DefaultSecondsPerLine
	}
	if t < 0 {
		t = 0
	}

	line := int(math.Floor(t/secondsPerLine)) + 1
	if line > totalLines {
		line = totalLines
	}
	return line
}
