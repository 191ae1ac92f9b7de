// Package output formats plan reports for the console.
package output

import (
	"fmt"
	"io"

	"github.com/nightshift-cli/nightshift/internal/timestamp"
)

// Item is one line of the remap report.
type Item struct {
	Hash     string
	Subject  string
	Original timestamp.Timestamp
	Planned  timestamp.Timestamp
}

// WriteReport prints the per-commit before/after listing shown ahead of the
// confirmation prompt.
func WriteReport(w io.Writer, items []Item) {
	fmt.Fprintf(w, "Found %d commits during work hours:\n", len(items))
	for _, it := range items {
		hash := it.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(w, "  %s - %q\n", hash, it.Subject)
		fmt.Fprintf(w, "    From: %s\n", it.Original.Format())
		fmt.Fprintf(w, "    To:   %s\n", it.Planned.Format())
		fmt.Fprintln(w)
	}
}

// WriteClean prints the nothing-to-do message.
func WriteClean(w io.Writer) {
	fmt.Fprintln(w, "No commits found during work hours.")
}

// WriteForcePushNote reminds that remotes are the user's responsibility.
func WriteForcePushNote(w io.Writer) {
	fmt.Fprintln(w, "Commit timestamps updated.")
	fmt.Fprintln(w, "Note: you may need to force push to update remote repositories.")
}
