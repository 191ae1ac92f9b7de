package main

import (
	"os"

	"github.com/nightshift-cli/nightshift/internal/git"
	"github.com/nightshift-cli/nightshift/internal/journal"
	"github.com/nightshift-cli/nightshift/internal/session"
	"github.com/nightshift-cli/nightshift/internal/term"
)

// newSession wires a Session to the real repository, terminal, and journal.
// The returned cleanup closes the journal and must always be called.
func newSession(assumeYes bool) (*session.Session, func(), error) {
	if err := git.DetectRepo("."); err != nil {
		return nil, nil, err
	}
	root, err := git.Root(".")
	if err != nil {
		return nil, nil, err
	}

	var recorder session.Recorder
	cleanup := func() {}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			// The journal is an audit aid; a broken one must not block a fix.
			logger.WithError(err).Warn("journal unavailable")
		} else {
			if sessions, err := j.Sessions(); err == nil {
				logger.WithField("past_sessions", len(sessions)).Debug("journal opened")
			}
			recorder = j
			cleanup = func() { j.Close() }
		}
	}

	s := session.New(
		cfg,
		git.NewReader(root),
		git.NewRewriter(root),
		term.New(assumeYes),
		recorder,
		os.Stdout,
		logger,
	)
	return s, cleanup, nil
}
