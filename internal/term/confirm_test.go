package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func prompt(input string, assumeYes, terminal bool) (*Prompt, *bytes.Buffer) {
	var out bytes.Buffer
	return &Prompt{
		In:         strings.NewReader(input),
		Out:        &out,
		AssumeYes:  assumeYes,
		isTerminal: func() bool { return terminal },
	}, &out
}

func TestConfirm_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		p, _ := prompt(tt.input, false, true)
		got, err := p.Confirm("Rewrite 3 commits?")
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestConfirm_AssumeYesSkipsPrompt(t *testing.T) {
	p, out := prompt("", true, true)
	got, err := p.Confirm("Rewrite 3 commits?")
	assert.NoError(t, err)
	assert.True(t, got)
	assert.Empty(t, out.String(), "no prompt is printed with --yes")
}

func TestConfirm_NonTerminalRefuses(t *testing.T) {
	p, out := prompt("y\n", false, false)
	got, err := p.Confirm("Rewrite 3 commits?")
	assert.NoError(t, err)
	assert.False(t, got, "piped stdin must not be read as consent")
	assert.Contains(t, out.String(), "--yes")
}
