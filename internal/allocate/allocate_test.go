package allocate

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nightshift-cli/nightshift/internal/policy"
	"github.com/nightshift-cli/nightshift/internal/timestamp"
)

var window = policy.NightWindow{StartHour: 22, EndHour: 3}

const spacing = 10 * time.Minute

func hash(c byte) string {
	return strings.Repeat(string(c), 40)
}

func mkts(t *testing.T, s string) timestamp.Timestamp {
	t.Helper()
	ts, err := timestamp.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

// Three same-night commits on a Tuesday: the 22:00-03:00 window splits into
// three 100-minute chunks, one commit per chunk.
func TestAllocate_SpreadChunks(t *testing.T) {
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-04T10:15:00+01:00"), InScope: true},
		{Hash: hash('b'), Original: mkts(t, "2025-03-04T13:40:00+01:00"), InScope: true},
		{Hash: hash('c'), Original: mkts(t, "2025-03-04T16:02:00+01:00"), InScope: true},
	}

	a := New(window, spacing, 42)
	plan, err := a.Allocate(entries, ModeSpread)
	assert.NoError(t, err)
	assert.Len(t, plan.Placements, 3)

	start, end := window.Bounds(entries[0].Original)
	chunk := end.Sub(start) / 3
	assert.Equal(t, 100*time.Minute, chunk)

	var prev time.Time
	for i, pl := range plan.Placements {
		got := pl.Planned.Time
		lo := start.Add(chunk * time.Duration(i))
		hi := lo.Add(chunk)

		assert.False(t, got.Before(start), "placement %d before window start", i)
		assert.True(t, got.Before(end), "placement %d past window end", i)
		assert.False(t, got.Before(lo), "placement %d before its chunk", i)
		assert.True(t, got.Before(hi), "placement %d past its chunk", i)

		if i > 0 {
			assert.False(t, got.Before(prev.Add(spacing)), "placements %d and %d closer than min spacing", i-1, i)
		}
		prev = got
	}
}

func TestAllocate_SingleCommitUsesFullWindow(t *testing.T) {
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-04T10:15:00+01:00"), InScope: true},
	}

	a := New(window, spacing, 7)
	plan, err := a.Allocate(entries, ModeSpread)
	assert.NoError(t, err)
	assert.Len(t, plan.Placements, 1)

	start, end := window.Bounds(entries[0].Original)
	got := plan.Placements[0].Planned.Time
	assert.False(t, got.Before(start))
	assert.True(t, got.Before(end))
}

func TestAllocate_Deterministic(t *testing.T) {
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-04T10:15:00+01:00"), InScope: true},
		{Hash: hash('b'), Original: mkts(t, "2025-03-05T13:40:00+01:00"), InScope: true},
		{Hash: hash('c'), Original: mkts(t, "2025-03-06T11:00:00+01:00"), InScope: true},
	}

	for _, mode := range []Mode{ModeSpread, ModeIncremental} {
		p1, err := New(window, spacing, 1234).Allocate(entries, mode)
		assert.NoError(t, err)
		p2, err := New(window, spacing, 1234).Allocate(entries, mode)
		assert.NoError(t, err)
		assert.True(t, reflect.DeepEqual(p1, p2), "same seed must yield identical %s plans", mode)
	}
}

func TestAllocate_IncrementalRespectsFixedNeighbors(t *testing.T) {
	// A fixed commit from last night precedes the flagged commit, and a
	// fixed noon commit follows it.
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-03T22:30:00+00:00")},
		{Hash: hash('b'), Original: mkts(t, "2025-03-04T11:00:00+00:00"), InScope: true},
		{Hash: hash('c'), Original: mkts(t, "2025-03-04T12:00:00+00:00")},
	}

	a := New(window, spacing, 5)
	plan, err := a.Allocate(entries, ModeIncremental)
	assert.NoError(t, err)
	assert.Len(t, plan.Placements, 1)

	got := plan.Placements[0].Planned.Time
	start, end := window.Bounds(entries[1].Original)
	assert.False(t, got.Before(start))
	assert.True(t, got.Before(end))
	assert.False(t, got.Before(entries[0].Original.Time.Add(spacing)))
	assert.False(t, got.After(entries[2].Original.Time.Add(-spacing)))

	_, found := plan.Lookup(hash('b'))
	assert.True(t, found)
	_, found = plan.Lookup(hash('a'))
	assert.False(t, found, "plan must cover exactly the in-scope commits")
}

// Fixed neighbors four minutes apart cannot host a commit with ten-minute
// spacing.
func TestAllocate_IncrementalInfeasibleBetweenTightNeighbors(t *testing.T) {
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-03T23:58:00+00:00")},
		{Hash: hash('b'), Original: mkts(t, "2025-03-04T00:00:00+00:00"), InScope: true},
		{Hash: hash('c'), Original: mkts(t, "2025-03-04T00:02:00+00:00")},
	}

	a := New(window, spacing, 11)
	plan, err := a.Allocate(entries, ModeIncremental)
	assert.Nil(t, plan)

	var inf *InfeasibleError
	assert.ErrorAs(t, err, &inf)
	assert.Equal(t, hash('b'), inf.Hash)
	assert.Equal(t, ConstraintSuccessor, inf.Constraint)
}

func TestAllocate_InfeasibleWhenPredecessorExhaustsWindow(t *testing.T) {
	// The fixed predecessor sits two minutes before the window closes, so
	// no slot with ten-minute spacing fits inside it.
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-04T02:58:00+00:00")},
		{Hash: hash('b'), Original: mkts(t, "2025-03-04T02:59:00+00:00"), InScope: true},
	}

	a := New(window, spacing, 3)
	_, err := a.Allocate(entries, ModeIncremental)

	var inf *InfeasibleError
	assert.ErrorAs(t, err, &inf)
	assert.Equal(t, hash('b'), inf.Hash)
	assert.Equal(t, ConstraintSpacing, inf.Constraint)
}

// Order preservation across a mixed multi-day sequence: substituting the
// planned values into the full sequence keeps it strictly increasing with
// the minimum gap around every planned commit.
func TestAllocate_OrderPreservedAcrossMixedSequence(t *testing.T) {
	entries := []Entry{
		{Hash: hash('a'), Original: mkts(t, "2025-03-03T01:00:00+00:00")},
		{Hash: hash('b'), Original: mkts(t, "2025-03-03T10:00:00+00:00"), InScope: true},
		{Hash: hash('c'), Original: mkts(t, "2025-03-03T20:30:00+00:00")},
		{Hash: hash('d'), Original: mkts(t, "2025-03-04T09:30:00+00:00"), InScope: true},
		{Hash: hash('e'), Original: mkts(t, "2025-03-05T10:30:00+00:00"), InScope: true},
		{Hash: hash('f'), Original: mkts(t, "2025-03-06T12:00:00+00:00")},
	}

	a := New(window, spacing, 21)
	plan, err := a.Allocate(entries, ModeIncremental)
	assert.NoError(t, err)
	assert.Len(t, plan.Placements, 3)

	var seq []time.Time
	for _, e := range entries {
		if planned, ok := plan.Lookup(e.Hash); ok {
			seq = append(seq, planned.Time)
		} else {
			seq = append(seq, e.Original.Time)
		}
	}

	for i := 1; i < len(seq); i++ {
		assert.True(t, seq[i].After(seq[i-1]), "sequence not strictly increasing at %d", i)
		planned := false
		if _, ok := plan.Lookup(entries[i].Hash); ok {
			planned = true
		}
		if _, ok := plan.Lookup(entries[i-1].Hash); ok {
			planned = true
		}
		if planned {
			assert.False(t, seq[i].Before(seq[i-1].Add(spacing)), "gap below min spacing at %d", i)
		}
	}
}
