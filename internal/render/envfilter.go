// Package render turns a remap plan into the text of a git filter-branch
// env-filter script. Rendering is inert: it never touches the repository.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nightshift-cli/nightshift/internal/allocate"
	"github.com/nightshift-cli/nightshift/internal/errors"
)

// hashRE matches full SHA-1 and SHA-256 object names. Hashes are validated
// before interpolation so the output is safe to pass as one shell-quoted
// argument.
var hashRE = regexp.MustCompile(`^([0-9a-f]{40}|[0-9a-f]{64})$`)

// EnvFilter renders the plan as an env-filter script: one conditional block
// per commit, matching on $GIT_COMMIT and exporting GIT_AUTHOR_DATE and
// GIT_COMMITTER_DATE. Those two date variables are the only assignment
// targets the template contains; committer and author name/email are never
// touched.
func EnvFilter(plan *allocate.Plan) (string, error) {
	var sb strings.Builder
	for _, pl := range plan.Placements {
		if !hashRE.MatchString(pl.Hash) {
			return "", errors.InternalErrorf("refusing to render invalid commit hash %q", pl.Hash)
		}
		date := pl.Planned.Format()
		fmt.Fprintf(&sb, "if [ $GIT_COMMIT = %s ]\nthen\n", pl.Hash)
		fmt.Fprintf(&sb, "    export GIT_AUTHOR_DATE=%q\n", date)
		fmt.Fprintf(&sb, "    export GIT_COMMITTER_DATE=%q\n", date)
		sb.WriteString("fi\n\n")
	}
	return sb.String(), nil
}

// CommandLine returns the full filter-branch invocation as a printable
// string, with the script single-quoted for the shell. Used by check and
// dry-run output; execution passes the script as one argv entry and never
// goes through a shell.
func CommandLine(script string) string {
	quoted := "'" + strings.ReplaceAll(script, "'", `'\''`) + "'"
	return "git filter-branch --force --env-filter " + quoted + " -- --all"
}
