package model

// TranscriptLine is one timed caption entry, used both for display and for
// synchronization against the playback clock. Times are seconds from the
// start of the lesson.
type TranscriptLine struct {
	ID        string
	StartTime float64
	EndTime   float64
	Text      string
}

// Contains reports whether t falls inside the line's half-open [start, end)
// interval. A time equal to EndTime belongs to the next line, not this one.
func (l TranscriptLine) Contains(t float64) bool {
	return t >= l.StartTime && t < l.EndTime
}

// Transcript is an ordered, non-overlapping (by convention, not enforced)
// sequence of transcript lines. It is immutable once loaded and replaced
// wholesale when a new subtitle resource arrives.
type Transcript struct {
	Lines []TranscriptLine
}

// NewTranscript creates a transcript from lines.
func NewTranscript(lines []TranscriptLine) Transcript {
	return Transcript{Lines: lines}
}

// Len returns the number of lines.
func (tr Transcript) Len() int { return len(tr.Lines) }

// ActiveIndex returns the index of the line active at time t, or -1 when no
// line covers t (gap policy).
func (tr Transcript) ActiveIndex(t float64) int {
	for i, l := range tr.Lines {
		if l.Contains(t) {
			return i
		}
	}
	return -1
}

// ActiveLine returns the line active at time t, or nil when t falls in a gap
// or beyond the last line.
func (tr Transcript) ActiveLine(t float64) *TranscriptLine {
	i := tr.ActiveIndex(t)
	if i < 0 {
		return nil
	}
	line := tr.Lines[i]
	return &line
}

// NextLine returns the line after the one active at t, clamped to the last
// line. When t falls in a gap it returns the first line starting after t.
// Used by the step-forward debug action.
func (tr Transcript) NextLine(t float64) *TranscriptLine {
	if len(tr.Lines) == 0 {
		return nil
	}

	next := len(tr.Lines) - 1
	if i := tr.ActiveIndex(t); i >= 0 {
		if i+1 < len(tr.Lines) {
			next = i + 1
		}
	} else {
		for j, l := range tr.Lines {
			if l.StartTime > t {
				next = j
				break
			}
		}
	}

	line := tr.Lines[next]
	return &line
}

// PrevLine returns the line before the one active at t, clamped to the first
// line. When t falls in a gap it returns the last line starting before t.
// Used by the step-back debug action.
func (tr Transcript) PrevLine(t float64) *TranscriptLine {
	if len(tr.Lines) == 0 {
		return nil
	}

	prev := 0
	if i := tr.ActiveIndex(t); i >= 0 {
		if i > 0 {
			prev = i - 1
		}
	} else {
		for j := len(tr.Lines) - 1; j >= 0; j-- {
			if tr.Lines[j].StartTime < t {
				prev = j
				break
			}
		}
	}

	line := tr.Lines[prev]
	return &line
}
