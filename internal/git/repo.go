package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// DetectRepo checks if dir is inside a git repository
// Uses git rev-parse to verify we're inside a working tree
func DetectRepo(dir string) error {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}
	return nil
}

// Root returns the repository's top-level directory
func Root(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to find repository root: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HooksDir returns the repository's hooks directory
func HooksDir(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--git-path", "hooks")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to find hooks directory: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
