// Package term implements the interactive confirmation gate.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt asks yes/no questions on the terminal. When stdin is not a
// terminal it never blocks: it answers no unless AssumeYes is set, so
// scripted runs fail safe.
type Prompt struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool
	// isTerminal overrides terminal detection in tests.
	isTerminal func() bool
}

// New returns a Prompt wired to stdin/stdout.
func New(assumeYes bool) *Prompt {
	return &Prompt{
		In:        os.Stdin,
		Out:       os.Stdout,
		AssumeYes: assumeYes,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Confirm prints the message and reads a y/N answer. Only an explicit
// "y"/"yes" accepts.
func (p *Prompt) Confirm(msg string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	if p.isTerminal != nil && !p.isTerminal() {
		fmt.Fprintln(p.Out, "stdin is not a terminal; refusing without --yes")
		return false, nil
	}

	fmt.Fprintf(p.Out, "%s [y/N] ", msg)
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
