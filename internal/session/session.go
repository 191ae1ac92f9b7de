// Package session sequences the check, dry-run and fix operations. It holds
// no placement logic of its own: classification, allocation and rendering
// live in their own packages, and confirmation and execution are injected
// so the core can be driven without a terminal or a real repository.
package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nightshift-cli/nightshift/internal/allocate"
	"github.com/nightshift-cli/nightshift/internal/config"
	"github.com/nightshift-cli/nightshift/internal/git"
	"github.com/nightshift-cli/nightshift/internal/journal"
	"github.com/nightshift-cli/nightshift/internal/output"
	"github.com/nightshift-cli/nightshift/internal/render"
)

// CommitSource supplies ordered commit records for a lookback scope.
type CommitSource interface {
	Commits(ctx context.Context, lookback time.Duration) ([]git.Commit, error)
	Subject(ctx context.Context, hash string) (string, error)
}

// Executor applies a rendered env-filter script to the repository.
type Executor interface {
	Rewrite(ctx context.Context, script string) error
}

// Confirmer is the gate between planning and execution.
type Confirmer interface {
	Confirm(msg string) (bool, error)
}

// Recorder persists fix session outcomes. May be nil.
type Recorder interface {
	Append(rec journal.Record) error
}

// Session wires the engine to its collaborators for one invocation.
type Session struct {
	cfg       *config.Config
	source    CommitSource
	executor  Executor
	confirmer Confirmer
	recorder  Recorder
	out       io.Writer
	log       *logrus.Logger
}

// New builds a Session. recorder may be nil when no journal is configured.
func New(cfg *config.Config, source CommitSource, executor Executor, confirmer Confirmer, recorder Recorder, out io.Writer, log *logrus.Logger) *Session {
	return &Session{
		cfg:       cfg,
		source:    source,
		executor:  executor,
		confirmer: confirmer,
		recorder:  recorder,
		out:       out,
		log:       log,
	}
}

// result is one computed plan plus everything derived from it.
type result struct {
	commits []git.Commit
	entries []allocate.Entry
	plan    *allocate.Plan
	script  string
	items   []output.Item
	mode    allocate.Mode
}

// plan reads commits, classifies them, allocates night slots and renders
// the env-filter script. A nil plan means nothing is in scope.
func (s *Session) plan(ctx context.Context, all bool) (*result, error) {
	lookback := s.cfg.Lookback
	if all {
		lookback = 0
	}

	commits, err := s.source.Commits(ctx, lookback)
	if err != nil {
		return nil, err
	}

	pol := s.cfg.Policy()
	entries := make([]allocate.Entry, 0, len(commits))
	inScope := 0
	for _, c := range commits {
		e := allocate.Entry{
			Hash:     c.Hash,
			Original: c.Committer,
			InScope:  pol.InScope(c.Committer),
		}
		if e.InScope {
			inScope++
		}
		entries = append(entries, e)
	}

	s.log.WithFields(logrus.Fields{
		"commits":  len(entries),
		"in_scope": inScope,
	}).Debug("classified commits")

	if inScope == 0 {
		return &result{commits: commits, entries: entries}, nil
	}

	// Spread mode when the whole batch moves together; incremental when
	// out-of-scope commits interleave and their timestamps must be kept.
	mode := allocate.ModeSpread
	if inScope < len(entries) {
		mode = allocate.ModeIncremental
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	alloc := allocate.New(s.cfg.Window(), s.cfg.MinSpacing, seed)
	plan, err := alloc.Allocate(entries, mode)
	if err != nil {
		return nil, err
	}

	script, err := render.EnvFilter(plan)
	if err != nil {
		return nil, err
	}

	items := make([]output.Item, 0, len(plan.Placements))
	for _, pl := range plan.Placements {
		subject, err := s.source.Subject(ctx, pl.Hash)
		if err != nil {
			s.log.WithError(err).WithField("hash", pl.Hash).Debug("could not read subject")
		}
		items = append(items, output.Item{
			Hash:     pl.Hash,
			Subject:  subject,
			Original: pl.Original,
			Planned:  pl.Planned,
		})
	}

	return &result{commits: commits, entries: entries, plan: plan, script: script, items: items, mode: mode}, nil
}

// Check reports whether any work-hour commits exist in the lookback scope.
// It prints the would-be plan and returns true when the history is dirty;
// the CLI turns that into a non-zero exit.
func (s *Session) Check(ctx context.Context) (bool, error) {
	r, err := s.plan(ctx, false)
	if err != nil {
		return false, err
	}
	if r.plan == nil {
		output.WriteClean(s.out)
		return false, nil
	}
	output.WriteReport(s.out, r.items)
	return true, nil
}

// DryRun prints the plan and the exact rewrite command without executing.
func (s *Session) DryRun(ctx context.Context, all bool) error {
	r, err := s.plan(ctx, all)
	if err != nil {
		return err
	}
	if r.plan == nil {
		output.WriteClean(s.out)
		return nil
	}
	output.WriteReport(s.out, r.items)
	fmt.Fprintln(s.out, "Dry run: the following command would be executed:")
	fmt.Fprintln(s.out, render.CommandLine(r.script))
	return nil
}

// Fix plans, confirms, and rewrites. User rejection is a normal, reported
// cancellation, not an error. Once execution starts the rewrite is
// all-or-nothing; the confirmation prompt is the only cancellation point.
func (s *Session) Fix(ctx context.Context, all bool) error {
	r, err := s.plan(ctx, all)
	if err != nil {
		return err
	}
	if r.plan == nil {
		output.WriteClean(s.out)
		return nil
	}

	output.WriteReport(s.out, r.items)
	fmt.Fprintln(s.out, "WARNING: this will rewrite git history. Not recommended on shared branches.")

	ok, err := s.confirmer.Confirm(fmt.Sprintf("Rewrite %d commits?", len(r.plan.Placements)))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Operation cancelled.")
		return nil
	}

	fmt.Fprintln(s.out, "Updating commit timestamps...")
	execErr := s.executor.Rewrite(ctx, r.script)
	s.record(r, execErr)
	if execErr != nil {
		return execErr
	}

	output.WriteForcePushNote(s.out)
	return nil
}

// record journals the session outcome; journaling must never block the fix.
func (s *Session) record(r *result, execErr error) {
	if s.recorder == nil {
		return
	}

	rec := journal.Record{
		StartedAt: time.Now(),
		Mode:      r.mode.String(),
		Success:   execErr == nil,
	}
	if execErr != nil {
		rec.FailureReason = execErr.Error()
	}
	byHash := make(map[string]git.Commit, len(r.commits))
	for _, c := range r.commits {
		byHash[c.Hash] = c
	}
	for _, pl := range r.plan.Placements {
		change := journal.Change{
			Hash:         pl.Hash,
			OldCommitter: pl.Original.Format(),
			New:          pl.Planned.Format(),
		}
		if c, ok := byHash[pl.Hash]; ok {
			change.OldAuthor = c.Author.Format()
		}
		rec.Changes = append(rec.Changes, change)
	}

	if err := s.recorder.Append(rec); err != nil {
		s.log.WithError(err).Warn("failed to journal fix session")
	}
}
