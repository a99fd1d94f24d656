package model

// PlaybackState is a snapshot of the workspace playback clock. There is one
// per open workspace view; it is read by every panel and mutated only through
// the playback controller's setters.
type PlaybackState struct {
	CurrentTime float64
	IsPlaying   bool
	Volume      float64
}
