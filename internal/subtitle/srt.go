// Package subtitle parses and formats SRT subtitle markup.
package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/asyncroom/acr/internal/model"
)

// IDPrefix is prepended to parsed line ids so they never collide with the
// bundled fallback transcript ids.
const IDPrefix = "srt-"

const timestampSeparator = "-->"

// Parse parses SRT content into ordered transcript lines. Cues are expected
// in the standard form: numeric index, `HH:MM:SS,mmm --> HH:MM:SS,mmm`
// timing line, one or more text lines, blank-line separator. CRLF endings
// and a leading BOM are tolerated.
func Parse(content string) ([]model.TranscriptLine, error) {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var lines []model.TranscriptLine
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		cue := len(lines) + 1
		line, err := parseCue(block)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", cue, err)
		}
		line.ID = fmt.Sprintf("%s%d", IDPrefix, cue)
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("no cues found")
	}

	return lines, nil
}

func parseCue(block string) (model.TranscriptLine, error) {
	rows := strings.Split(block, "\n")

	// The numeric index row is optional in the wild, skip it when present.
	if _, err := strconv.Atoi(strings.TrimSpace(rows[0])); err == nil {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return model.TranscriptLine{}, fmt.Errorf("missing timing line")
	}

	start, end, err := parseTimingLine(rows[0])
	if err != nil {
		return model.TranscriptLine{}, err
	}

	text := strings.TrimSpace(strings.Join(rows[1:], "\n"))
	if text == "" {
		return model.TranscriptLine{}, fmt.Errorf("missing cue text")
	}

	return model.TranscriptLine{
		StartTime: start,
		EndTime:   end,
		Text:      text,
	}, nil
}

func parseTimingLine(row string) (start, end float64, err error) {
	parts := strings.Split(row, timestampSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", strings.TrimSpace(row))
	}

	start, err = ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start timestamp: %w", err)
	}

	end, err = ParseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end timestamp: %w", err)
	}

	if end < start {
		return 0, 0, fmt.Errorf("end %q precedes start %q", strings.TrimSpace(parts[1]), strings.TrimSpace(parts[0]))
	}

	return start, end, nil
}

// ParseTimestamp parses an SRT timestamp (`HH:MM:SS,mmm`) into seconds.
func ParseTimestamp(ts string) (float64, error) {
	var h, m, s, ms int
	n, err := fmt.Sscanf(ts, "%d:%d:%d,%d", &h, &m, &s, &ms)
	if err != nil || n != 4 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	if h < 0 || m < 0 || m > 59 || s < 0 || s > 59 || ms < 0 || ms > 999 {
		return 0, fmt.Errorf("timestamp %q out of range", ts)
	}

	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000, nil
}

// FormatTimestamp formats seconds as an SRT timestamp (`HH:MM:SS,mmm`).
// Negative inputs clamp to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	totalMs := int64(math.Round(seconds * 1000))
	h := totalMs / 3_600_000
	m := (totalMs % 3_600_000) / 60_000
	s := (totalMs % 60_000) / 1000
	ms := totalMs % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
