package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// hookMarker identifies hooks this tool wrote, so reinstalling is safe and
// foreign hooks are never clobbered.
const hookMarker = "# managed by nightshift"

const prePushHook = `#!/bin/sh
` + hookMarker + `
# Refuses the push while work-hour commits remain in the last 24 hours.
nightshift check
if [ $? -ne 0 ]; then
    echo "pre-push: work-hour commits found; run 'nightshift fix' first" >&2
    exit 1
fi
`

// InstallPrePushHook writes the pre-push hook into the repository's hooks
// directory and returns the path it wrote. An existing hook not written by
// this tool is left alone and reported as an error.
func InstallPrePushHook(repoPath string) (string, error) {
	hooksDir, err := HooksDir(repoPath)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(repoPath, hooksDir)
	}

	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "pre-push")
	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), hookMarker) {
			return "", fmt.Errorf("a pre-push hook already exists at %s; remove it first", hookPath)
		}
	}

	if err := os.WriteFile(hookPath, []byte(prePushHook), 0755); err != nil {
		return "", fmt.Errorf("failed to write pre-push hook: %w", err)
	}

	return hookPath, nil
}
