package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"libris/internal/adapters/tui/styles"
	"libris/internal/domain"
)

// Shell is the interactive read-eval loop. One input line is processed
// fully before the next is read; errors are printed and the loop
// continues.
type Shell struct {
	env      *Env
	registry *Registry
	in       *bufio.Scanner
	out      io.Writer
}

// New creates a shell reading lines from in and printing to out
func New(env *Env, registry *Registry, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		env:      env,
		registry: registry,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run drives the loop until exit, quit, or end of input
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, styles.Title.Render("libris")+styles.Muted.Render("  type help for commands, exit to leave"))
	for {
		fmt.Fprint(s.out, styles.Prompt.Render(s.env.Cwd.Path()+" > "))
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		slog.Debug("executing line", "line", line)
		output, err := s.registry.Run(ctx, s.env, line)
		if err != nil {
			fmt.Fprintln(s.out, styles.ErrorText.Render("Error: "+err.Error()+Hint(err)))
			continue
		}
		if output != nil && *output != "" {
			fmt.Fprintln(s.out, stylize(*output))
		}
	}
}

// Hint returns a corrective suggestion for errors that have one
func Hint(err error) string {
	switch {
	case errors.Is(err, domain.ErrTagHasChildren):
		return " (use rm -r to delete recursively)"
	case errors.Is(err, domain.ErrNotWritable):
		return " (only a tag's description and color accept writes)"
	case errors.Is(err, domain.ErrInvalidDestination):
		return " (destination must be a tag path under /tags)"
	default:
		return ""
	}
}

// stylize colors the conventional message prefixes without touching the
// text itself, so piped output stays plain.
func stylize(output string) string {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "✓"):
			lines[i] = styles.Success.Render(line)
		case strings.HasPrefix(line, "Warning:"):
			lines[i] = styles.WarningText.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
