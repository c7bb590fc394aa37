package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"libris/internal/textutil"
)

// readInput implements the dual-mode contract for text commands: piped
// text wins and path arguments are ignored; otherwise paths are resolved
// and read through the tree.
func readInput(ctx context.Context, env *Env, paths []string, stdin *string) (string, error) {
	if stdin != nil {
		return *stdin, nil
	}
	if len(paths) == 0 {
		return "", errors.New("no input: pipe text or give a path")
	}
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		content, err := env.Tree.ReadFile(ctx, p, env.Cwd)
		if err != nil {
			return "", err
		}
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n"), nil
}

// parseLineCount handles the shared [-n NUM] flag of head and tail
func parseLineCount(args []string) (int, []string, error) {
	n := 10
	var paths []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" {
			i++
			if i >= len(args) {
				return 0, nil, errors.New("-n requires a number")
			}
			v, err := strconv.Atoi(args[i])
			if err != nil || v < 0 {
				return 0, nil, fmt.Errorf("invalid line count %q", args[i])
			}
			n = v
			continue
		}
		paths = append(paths, args[i])
	}
	return n, paths, nil
}

type headCommand struct{}

func (headCommand) Name() string     { return "head" }
func (headCommand) Synopsis() string { return "head [-n NUM] [path]  first NUM lines (default 10)" }

func (headCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	n, paths, err := parseLineCount(args)
	if err != nil {
		return nil, err
	}
	input, err := readInput(ctx, env, paths, stdin)
	if err != nil {
		return nil, err
	}
	return out(textutil.Head(input, n)), nil
}

type tailCommand struct{}

func (tailCommand) Name() string     { return "tail" }
func (tailCommand) Synopsis() string { return "tail [-n NUM] [path]  last NUM lines (default 10)" }

func (tailCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	n, paths, err := parseLineCount(args)
	if err != nil {
		return nil, err
	}
	input, err := readInput(ctx, env, paths, stdin)
	if err != nil {
		return nil, err
	}
	return out(textutil.Tail(input, n)), nil
}

type wcCommand struct{}

func (wcCommand) Name() string     { return "wc" }
func (wcCommand) Synopsis() string { return "wc [-l|-w|-c] [path]  count lines, words, characters" }

func (wcCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	mode := ""
	var paths []string
	for _, arg := range args {
		switch arg {
		case "-l", "-w", "-c":
			if mode != "" && mode != arg {
				return nil, errors.New("at most one of -l, -w, -c")
			}
			mode = arg
		default:
			paths = append(paths, arg)
		}
	}
	input, err := readInput(ctx, env, paths, stdin)
	if err != nil {
		return nil, err
	}
	lines, words, chars := textutil.Count(input)
	switch mode {
	case "-l":
		return out(strconv.Itoa(lines)), nil
	case "-w":
		return out(strconv.Itoa(words)), nil
	case "-c":
		return out(strconv.Itoa(chars)), nil
	default:
		return out(fmt.Sprintf("%d %d %d", lines, words, chars)), nil
	}
}

type sortCommand struct{}

func (sortCommand) Name() string     { return "sort" }
func (sortCommand) Synopsis() string { return "sort [-r] [path]  sort lines lexicographically" }

func (sortCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	reverse := false
	var paths []string
	for _, arg := range args {
		if arg == "-r" {
			reverse = true
			continue
		}
		paths = append(paths, arg)
	}
	input, err := readInput(ctx, env, paths, stdin)
	if err != nil {
		return nil, err
	}
	return out(textutil.Sort(input, reverse)), nil
}

type uniqCommand struct{}

func (uniqCommand) Name() string     { return "uniq" }
func (uniqCommand) Synopsis() string { return "uniq [-c] [path]  collapse consecutive duplicate lines" }

func (uniqCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	count := false
	var paths []string
	for _, arg := range args {
		if arg == "-c" {
			count = true
			continue
		}
		paths = append(paths, arg)
	}
	input, err := readInput(ctx, env, paths, stdin)
	if err != nil {
		return nil, err
	}
	return out(textutil.Uniq(input, count)), nil
}

type grepCommand struct{}

func (grepCommand) Name() string     { return "grep" }
func (grepCommand) Synopsis() string { return "grep [-i] <pattern> [path]  keep matching lines" }

func (grepCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	ignoreCase := false
	var rest []string
	for _, arg := range args {
		if arg == "-i" {
			ignoreCase = true
			continue
		}
		rest = append(rest, arg)
	}
	if len(rest) == 0 {
		return nil, errors.New("missing pattern")
	}
	input, err := readInput(ctx, env, rest[1:], stdin)
	if err != nil {
		return nil, err
	}
	matched, err := textutil.Grep(input, rest[0], ignoreCase)
	if err != nil {
		return nil, err
	}
	return out(matched), nil
}

type moreCommand struct{}

func (moreCommand) Name() string     { return "more" }
func (moreCommand) Synopsis() string { return "more [path]  page through text" }

func (moreCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	input, err := readInput(ctx, env, args, stdin)
	if err != nil {
		return nil, err
	}
	if env.Pager == nil {
		return nil, errors.New("no pager available")
	}
	if err := env.Pager.Page(input); err != nil {
		return nil, err
	}
	// Display side effect only; nothing flows to a later stage.
	return nil, nil
}

type clipCommand struct{}

func (clipCommand) Name() string     { return "clip" }
func (clipCommand) Synopsis() string { return "clip [path]  copy text to the clipboard" }

func (clipCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	input, err := readInput(ctx, env, args, stdin)
	if err != nil {
		return nil, err
	}
	if env.Clip == nil {
		return nil, errors.New("no clipboard available")
	}
	if err := env.Clip(input); err != nil {
		return nil, err
	}
	return nil, nil
}
