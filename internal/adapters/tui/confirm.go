package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"libris/internal/ports"
)

// TerminalConfirmer asks yes/no questions on the console. It blocks the
// session until the user answers; any answer other than y confirms
// nothing.
type TerminalConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure TerminalConfirmer implements ports.Confirmer
var _ ports.Confirmer = (*TerminalConfirmer)(nil)

// NewConfirmer creates a confirmer reading answers from in
func NewConfirmer(in io.Reader, out io.Writer) *TerminalConfirmer {
	return &TerminalConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and waits for an answer
func (c *TerminalConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	answer, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
