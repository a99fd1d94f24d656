package subtitle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asyncroom/acr/internal/model"
	"github.com/asyncroom/acr/internal/subtitle"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		content  string
		expLines []model.TranscriptLine
		expErr   bool
		errMsg   string
	}{
		"A valid two-cue file parses in order": {
			content: "1\n00:00:00,000 --> 00:00:05,000\nWelcome to the async classroom.\n\n2\n00:00:05,000 --> 00:00:12,500\nToday we talk about derivatives.\n",
			expLines: []model.TranscriptLine{
				{ID: "srt-1", StartTime: 0, EndTime: 5, Text: "Welcome to the async classroom."},
				{ID: "srt-2", StartTime: 5, EndTime: 12.5, Text: "Today we talk about derivatives."},
			},
		},

		"CRLF endings and a BOM are tolerated": {
			content: "\uFEFF1\r\n00:01:00,000 --> 00:01:30,000\r\nSecants become tangents.\r\n",
			expLines: []model.TranscriptLine{
				{ID: "srt-1", StartTime: 60, EndTime: 90, Text: "Secants become tangents."},
			},
		},

		"Multi-line cue text is joined with newlines": {
			content: "1\n00:00:01,000 --> 00:00:02,000\nfirst row\nsecond row\n",
			expLines: []model.TranscriptLine{
				{ID: "srt-1", StartTime: 1, EndTime: 2, Text: "first row\nsecond row"},
			},
		},

		"A cue without the numeric index still parses": {
			content: "00:00:00,500 --> 00:00:01,250\nno index here\n",
			expLines: []model.TranscriptLine{
				{ID: "srt-1", StartTime: 0.5, EndTime: 1.25, Text: "no index here"},
			},
		},

		"Malformed timing line fails naming the cue": {
			content: "1\n00:00:00,000 -> 00:00:05,000\nbroken arrow\n",
			expErr:  true,
			errMsg:  "cue 1",
		},

		"End before start fails": {
			content: "1\n00:00:10,000 --> 00:00:05,000\nbackwards\n",
			expErr:  true,
			errMsg:  "precedes start",
		},

		"Missing cue text fails": {
			content: "1\n00:00:00,000 --> 00:00:05,000\n",
			expErr:  true,
			errMsg:  "missing cue text",
		},

		"Empty content fails": {
			content: "\n\n",
			expErr:  true,
			errMsg:  "no cues found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lines, err := subtitle.Parse(tt.content)

			if tt.expErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expLines, lines)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:05,000\nWelcome.\n\n2\n00:01:02,500 --> 00:01:30,000\nObserve the yellow segment.\n"

	lines, err := subtitle.Parse(content)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Mapping back to (start, end, text) triples reproduces the entries.
	assert.Equal(t, "00:00:00,000", subtitle.FormatTimestamp(lines[0].StartTime))
	assert.Equal(t, "00:00:05,000", subtitle.FormatTimestamp(lines[0].EndTime))
	assert.Equal(t, "Welcome.", lines[0].Text)
	assert.Equal(t, "00:01:02,500", subtitle.FormatTimestamp(lines[1].StartTime))
	assert.Equal(t, "00:01:30,000", subtitle.FormatTimestamp(lines[1].EndTime))
	assert.Equal(t, "Observe the yellow segment.", lines[1].Text)
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[string]struct {
		seconds float64
		expTS   string
	}{
		"Zero":                      {seconds: 0, expTS: "00:00:00,000"},
		"Negative clamps to zero":   {seconds: -3, expTS: "00:00:00,000"},
		"Sub-second precision":      {seconds: 62.5, expTS: "00:01:02,500"},
		"Rounds to the millisecond": {seconds: 1.0004, expTS: "00:00:01,000"},
		"Hours carry":               {seconds: 3723.042, expTS: "01:02:03,042"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expTS, subtitle.FormatTimestamp(tt.seconds))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := map[string]struct {
		ts         string
		expSeconds float64
		expErr     bool
	}{
		"Valid timestamp":       {ts: "00:01:02,500", expSeconds: 62.5},
		"Hour component":        {ts: "01:02:03,042", expSeconds: 3723.042},
		"Minutes out of range":  {ts: "00:61:00,000", expErr: true},
		"Millis out of range":   {ts: "00:00:00,1000", expErr: true},
		"Not a timestamp":       {ts: "half past nine", expErr: true},
		"Dot millis is not SRT": {ts: "00:00:01.500", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := subtitle.ParseTimestamp(tt.ts)

			if tt.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.expSeconds, got, 0.0001)
			}
		})
	}
}
