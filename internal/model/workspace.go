package model

// Workspace is the unit of the unified editor+player view: one course/task
// instance addressed by an opaque id, with everything the shell needs loaded.
type Workspace struct {
	ID            string
	Task          Task
	EditorContent string
	VideoURL      string
	Transcript    Transcript

	// TranscriptFallback is set when the subtitle resource could not be
	// fetched or parsed and the bundled transcript is in use instead.
	TranscriptFallback bool
}
