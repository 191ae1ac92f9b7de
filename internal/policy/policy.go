// Package policy holds the work-hours and night-window rules that decide
// which commits get remapped and where their new timestamps may land.
package policy

import (
	"time"

	"github.com/nightshift-cli/nightshift/internal/errors"
	"github.com/nightshift-cli/nightshift/internal/timestamp"
)

// WorkHours describes the busy interval during which commits are flagged for
// remapping. Hours are local clock hours in the commit's own UTC offset.
type WorkHours struct {
	StartHour    int
	EndHour      int
	SkipWeekends bool
	// WeekdayOnly is equivalent in effect to SkipWeekends; older configs used
	// this name and both are honored.
	WeekdayOnly bool
}

// weekdayBound reports whether the policy restricts flagging to Mon-Fri.
func (p WorkHours) weekdayBound() bool {
	return p.SkipWeekends || p.WeekdayOnly
}

// InScope reports whether a commit timestamp falls inside the work-hours
// policy and should be remapped. Pure and total: a parsed timestamp always
// classifies one way or the other.
func (p WorkHours) InScope(ts timestamp.Timestamp) bool {
	wd := ts.Weekday()
	if p.weekdayBound() && (wd == time.Saturday || wd == time.Sunday) {
		return false
	}
	h := ts.Hour()
	return h >= p.StartHour && h < p.EndHour
}

// Validate rejects malformed work-hour configuration before any commit is
// processed.
func (p WorkHours) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 || p.EndHour < 1 || p.EndHour > 24 {
		return errors.ConfigErrorf("work hours out of range: %d-%d", p.StartHour, p.EndHour)
	}
	if p.EndHour <= p.StartHour {
		return errors.ConfigErrorf("work hours end (%d) must be after start (%d)", p.EndHour, p.StartHour)
	}
	return nil
}

// NightWindow is the interval replacement timestamps are placed into. It
// always spans midnight: it opens at StartHour on the evening before a
// flagged commit's original date and closes at EndHour on the original date.
type NightWindow struct {
	StartHour int // evening, e.g. 22
	EndHour   int // next-day morning, e.g. 3
}

// Duration returns the length of the window.
func (w NightWindow) Duration() time.Duration {
	return time.Duration(24-w.StartHour+w.EndHour) * time.Hour
}

// Bounds returns the concrete [start, end) interval for a commit originally
// timestamped at orig, in the commit's own offset.
func (w NightWindow) Bounds(orig timestamp.Timestamp) (start, end time.Time) {
	midnight := orig.Midnight()
	start = midnight.AddDate(0, 0, -1).Add(time.Duration(w.StartHour) * time.Hour)
	end = midnight.Add(time.Duration(w.EndHour) * time.Hour)
	return start, end
}

// Validate rejects a window with zero or negative duration. The evening hour
// must fall in the second half of the day and the morning hour in the first,
// which is what makes the midnight-spanning placement well defined.
func (w NightWindow) Validate() error {
	if w.StartHour < 12 || w.StartHour > 23 {
		return errors.ConfigErrorf("night window start hour %d must be an evening hour (12-23)", w.StartHour)
	}
	if w.EndHour < 0 || w.EndHour > 11 {
		return errors.ConfigErrorf("night window end hour %d must be a morning hour (0-11)", w.EndHour)
	}
	if w.Duration() <= 0 {
		return errors.ConfigErrorf("night window %d-%d has no duration", w.StartHour, w.EndHour)
	}
	return nil
}
