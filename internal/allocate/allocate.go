// Package allocate places flagged commits into their night windows while
// keeping the full commit sequence strictly increasing with a minimum gap.
package allocate

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/nightshift-cli/nightshift/internal/policy"
	"github.com/nightshift-cli/nightshift/internal/timestamp"
)

// Mode selects the placement strategy.
type Mode int

const (
	// ModeSpread partitions each night window into equal chunks and samples
	// one commit per chunk from a normal distribution around the chunk
	// midpoint. Used when a whole batch is relocated together.
	ModeSpread Mode = iota
	// ModeIncremental draws uniformly inside the window and then shifts
	// forward past the preceding commit, respecting fixed neighbors. Used
	// when only a subset of an otherwise-good sequence moves.
	ModeIncremental
)

func (m Mode) String() string {
	if m == ModeSpread {
		return "spread"
	}
	return "incremental"
}

// Entry is one commit presented to the allocator, in original chronological
// order. Out-of-scope entries keep their original timestamps and act as
// fixed anchors for spacing.
type Entry struct {
	Hash     string
	Original timestamp.Timestamp
	InScope  bool
}

// Placement maps one in-scope commit to its new timestamp.
type Placement struct {
	Hash     string
	Original timestamp.Timestamp
	Planned  timestamp.Timestamp
}

// Plan is the ordered hash-to-new-timestamp mapping covering exactly the
// in-scope commits.
type Plan struct {
	Placements []Placement
}

// Lookup returns the planned timestamp for a hash, if the plan covers it.
func (p *Plan) Lookup(hash string) (timestamp.Timestamp, bool) {
	for _, pl := range p.Placements {
		if pl.Hash == hash {
			return pl.Planned, true
		}
	}
	return timestamp.Timestamp{}, false
}

// Constraint names which bound made a placement impossible.
type Constraint string

const (
	ConstraintWindow    Constraint = "window bound"
	ConstraintSpacing   Constraint = "minimum spacing"
	ConstraintSuccessor Constraint = "successor bound"
)

// InfeasibleError reports the first commit for which no valid slot exists
// and the nearest constraint that was violated. Nothing is rendered or
// executed when allocation fails.
type InfeasibleError struct {
	Hash       string
	Constraint Constraint
	Detail     string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no valid slot for commit %s: %s violated (%s)", shortHash(e.Hash), e.Constraint, e.Detail)
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// Allocator computes remap plans. The random source is injected so plans are
// reproducible: the same seed, entries, and policy always yield the same
// plan.
type Allocator struct {
	Window  policy.NightWindow
	Spacing time.Duration
	rng     *rand.Rand
}

// New creates an Allocator with a deterministic random source.
func New(window policy.NightWindow, spacing time.Duration, seed int64) *Allocator {
	return &Allocator{
		Window:  window,
		Spacing: spacing,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Allocate computes new timestamps for the in-scope entries. The entries
// must be in original chronological order; out-of-scope entries are never
// moved. Returns *InfeasibleError when the constraints cannot be met.
func (a *Allocator) Allocate(entries []Entry, mode Mode) (*Plan, error) {
	candidates, ends := a.candidates(entries, mode)

	plan := &Plan{}
	var prev time.Time
	for i, e := range entries {
		if !e.InScope {
			// Fixed anchor. Ordering among untouched commits is history's
			// own; only placements are held to the spacing invariant.
			prev = e.Original.Time
			continue
		}

		t := candidates[i]
		raised := false
		if !prev.IsZero() && t.Before(prev.Add(a.Spacing)) {
			t = prev.Add(a.Spacing)
			raised = true
		}

		if !t.Before(ends[i]) {
			c := ConstraintWindow
			detail := fmt.Sprintf("candidate %s is past window end %s",
				t.Format(timestamp.GitDefault), ends[i].Format(timestamp.GitDefault))
			if raised {
				c = ConstraintSpacing
				detail = fmt.Sprintf("earliest slot %s after predecessor is past window end %s",
					t.Format(timestamp.GitDefault), ends[i].Format(timestamp.GitDefault))
			}
			return nil, &InfeasibleError{Hash: e.Hash, Constraint: c, Detail: detail}
		}

		if i+1 < len(entries) && !entries[i+1].InScope {
			limit := entries[i+1].Original.Time.Add(-a.Spacing)
			if t.After(limit) {
				return nil, &InfeasibleError{
					Hash:       e.Hash,
					Constraint: ConstraintSuccessor,
					Detail: fmt.Sprintf("slot %s is within %s of fixed successor %s",
						t.Format(timestamp.GitDefault), a.Spacing, shortHash(entries[i+1].Hash)),
				}
			}
		}

		plan.Placements = append(plan.Placements, Placement{
			Hash:     e.Hash,
			Original: e.Original,
			Planned:  timestamp.New(t),
		})
		prev = t
	}

	return plan, nil
}

// candidates computes the initial (pre-adjustment) time and window end for
// each in-scope entry. Indices line up with entries; out-of-scope slots stay
// zero.
func (a *Allocator) candidates(entries []Entry, mode Mode) ([]time.Time, []time.Time) {
	cands := make([]time.Time, len(entries))
	ends := make([]time.Time, len(entries))

	if mode == ModeIncremental {
		for i, e := range entries {
			if !e.InScope {
				continue
			}
			start, end := a.Window.Bounds(e.Original)
			cands[i] = a.uniform(start, end)
			ends[i] = end
		}
		return cands, ends
	}

	// Spread mode: chunk each night window by the number of commits sharing
	// it. In-scope commits are chronological, so same-date runs are
	// contiguous within the in-scope subsequence.
	var group []int
	var groupKey string
	flush := func() {
		if len(group) == 0 {
			return
		}
		first := entries[group[0]]
		start, end := a.Window.Bounds(first.Original)
		chunk := end.Sub(start) / time.Duration(len(group))
		for n, idx := range group {
			lo := start.Add(chunk * time.Duration(n))
			hi := lo.Add(chunk)
			cands[idx] = a.normalInChunk(lo, hi)
			ends[idx] = end
		}
		group = group[:0]
	}
	for i, e := range entries {
		if !e.InScope {
			continue
		}
		key := e.Original.DateKey()
		if key != groupKey {
			flush()
			groupKey = key
		}
		group = append(group, i)
	}
	flush()

	return cands, ends
}

// uniform draws a whole-second time uniformly from [start, end).
func (a *Allocator) uniform(start, end time.Time) time.Time {
	span := int64(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(a.rng.Int63n(span)) * time.Second)
}

// normalInChunk samples around the chunk midpoint with a deviation of one
// sixth of the chunk, so ~99% of the mass lands inside, then clips to the
// chunk bounds.
func (a *Allocator) normalInChunk(lo, hi time.Time) time.Time {
	chunk := hi.Sub(lo)
	center := lo.Add(chunk / 2)
	sd := float64(chunk) / 6.0
	offset := time.Duration(a.rng.NormFloat64() * sd)
	t := center.Add(offset).Truncate(time.Second)
	if t.Before(lo) {
		return lo
	}
	if !t.Before(hi) {
		return hi.Add(-time.Second)
	}
	return t
}
