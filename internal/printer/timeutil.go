package printer

import (
	"fmt"
	"time"
)

// TimeAgo renders a course or session age as a coarse relative phrase,
// anchored to UTC so table output is stable across machines.
// "5 seconds ago (UTC)", "2 hours ago (UTC)", "3 days ago (UTC)".
func TimeAgo(t time.Time) string {
	diff := time.Now().UTC().Sub(t.UTC())
	if diff < 0 {
		return "in the future (UTC)"
	}

	switch {
	case diff < time.Minute:
		return agoPhrase(int(diff.Seconds()), "second")
	case diff < time.Hour:
		return agoPhrase(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return agoPhrase(int(diff.Hours()), "hour")
	}

	return agoPhrase(int(diff.Hours()/24), "day")
}

func agoPhrase(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago (UTC)", unit)
	}
	return fmt.Sprintf("%d %ss ago (UTC)", n, unit)
}

// FormatTimestamp renders an absolute time the way the session and course
// tables show it: "2006-01-02 15:04:05 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
