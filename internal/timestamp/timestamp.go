// Package timestamp models commit timestamps as civil time plus a UTC offset
// and handles the git date formats the tool reads and writes.
package timestamp

import (
	"time"

	"github.com/nightshift-cli/nightshift/internal/errors"
)

// GitDefault is git's default date format: "Mon Jan 2 15:04:05 2006 -0700".
// This is the format GIT_AUTHOR_DATE and GIT_COMMITTER_DATE are written in.
const GitDefault = "Mon Jan 2 15:04:05 2006 -0700"

// parseLayouts are the formats accepted from git log output, tried in order.
// %aI/%cI produce strict ISO-8601 (RFC 3339); --date=iso produces the second
// form; the last is git's default human-readable format.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	GitDefault,
}

// Timestamp is a commit timestamp. The embedded time carries the commit's own
// UTC offset as a fixed zone, so weekday and hour reflect the committer's
// local clock, not the machine running the tool.
type Timestamp struct {
	Time time.Time
}

// Parse interprets a git date string in any supported format.
func Parse(s string) (Timestamp, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, errors.ParseErrorf("unrecognized git date: %q", s)
}

// New builds a Timestamp from a time.Time, truncated to whole seconds since
// git dates carry no sub-second precision.
func New(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// Format renders the timestamp in git's default date format, including the
// UTC offset. All rendered env-filter dates go through this method.
func (ts Timestamp) Format() string {
	return ts.Time.Format(GitDefault)
}

// ISO renders the timestamp as strict ISO-8601.
func (ts Timestamp) ISO() string {
	return ts.Time.Format(time.RFC3339)
}

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool {
	return ts.Time.IsZero()
}

// Weekday returns the day of week in the commit's own offset.
func (ts Timestamp) Weekday() time.Weekday {
	return ts.Time.Weekday()
}

// Hour returns the local clock hour in the commit's own offset.
func (ts Timestamp) Hour() int {
	return ts.Time.Hour()
}

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Time.Before(other.Time)
}

// Sub returns the duration ts - other.
func (ts Timestamp) Sub(other Timestamp) time.Duration {
	return ts.Time.Sub(other.Time)
}

// Midnight returns 00:00:00 of the timestamp's calendar day, in its offset.
func (ts Timestamp) Midnight() time.Time {
	y, m, d := ts.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Time.Location())
}

// DateKey returns the calendar date as a comparable string, used to group
// commits that share a night window.
func (ts Timestamp) DateKey() string {
	return ts.Time.Format("2006-01-02")
}
