package git

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Rewriter applies an env-filter script to a repository's full history.
// The rewrite is all-or-nothing per invocation; there is no mid-flight
// cancellation once filter-branch starts.
type Rewriter struct {
	repoPath string
	logger   *slog.Logger
}

// NewRewriter creates a Rewriter for the given repository path
func NewRewriter(repoPath string) *Rewriter {
	return &Rewriter{
		repoPath: repoPath,
		logger:   slog.Default().With("component", "rewriter"),
	}
}

// Rewrite runs git filter-branch with the given env-filter script passed as
// a single argument. The script never goes through a shell on our side.
func (rw *Rewriter) Rewrite(ctx context.Context, script string) error {
	rw.logger.Info("rewriting history", "script_bytes", len(script))

	cmd := exec.CommandContext(ctx, "git", "filter-branch", "--force", "--env-filter", script, "--", "--all")
	cmd.Dir = rw.repoPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		rw.logger.Error("filter-branch failed", "error", err)
		return fmt.Errorf("git filter-branch failed: %w (output: %s)", err, string(output))
	}

	rw.logger.Info("history rewritten")
	return nil
}
