package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nightshift-cli/nightshift/internal/timestamp"
)

// Commit is one immutable record read from history: the object name plus
// author and committer timestamps, each with its own UTC offset.
type Commit struct {
	Hash      string
	Author    timestamp.Timestamp
	Committer timestamp.Timestamp
}

// Reader supplies commit records from a repository's history by shelling
// out to git log.
type Reader struct {
	repoPath string
}

// NewReader creates a Reader for the given repository path
func NewReader(repoPath string) *Reader {
	return &Reader{repoPath: repoPath}
}

// Commits returns commits in chronological order (oldest first). A non-zero
// lookback restricts the result to commits whose committer time falls within
// that duration of now.
//
// %H|%aI|%cI gives the hash plus author and committer dates in strict
// ISO-8601, which preserves each commit's UTC offset through parsing.
func (r *Reader) Commits(ctx context.Context, lookback time.Duration) ([]Commit, error) {
	args := []string{"log", "--format=%H|%aI|%cI"}
	if lookback > 0 {
		args = append(args, fmt.Sprintf("--since=%d.seconds.ago", int64(lookback/time.Second)))
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.repoPath

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("git log failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("git log failed: %w", err)
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed git log line: %q", line)
		}
		author, err := timestamp.Parse(parts[1])
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", parts[0], err)
		}
		committer, err := timestamp.Parse(parts[2])
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", parts[0], err)
		}
		commits = append(commits, Commit{Hash: parts[0], Author: author, Committer: committer})
	}

	// git log lists newest first; the allocator wants oldest first
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	return commits, nil
}

// Subject returns the one-line commit message for a hash, for reporting.
func (r *Reader) Subject(ctx context.Context, hash string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--pretty=%s", hash)
	cmd.Dir = r.repoPath

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to read subject of %s: %w", hash, err)
	}
	return strings.TrimSpace(string(output)), nil
}
