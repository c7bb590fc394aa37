package shell

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"libris/internal/domain"
	"libris/internal/vfs"
)

// targetKind classifies the VFS path a mutation command points at
type targetKind int

const (
	targetOther   targetKind = iota
	targetBook               // /books/<id>
	targetTagBook            // a numeric segment under /tags, e.g. /tags/Work/42
	targetTag                // a non-numeric path under /tags
)

type target struct {
	kind    targetKind
	abs     string
	bookID  int64
	tagPath string // owning tag for targetTagBook, the tag itself for targetTag
}

// absolutize turns a command argument into a cleaned absolute VFS path.
// Purely textual, so destinations that do not exist yet still classify.
func absolutize(env *Env, arg string) string {
	if !strings.HasPrefix(arg, "/") {
		arg = path.Join(env.Cwd.Path(), arg)
	}
	return path.Clean(arg)
}

func classify(env *Env, arg string) target {
	abs := absolutize(env, arg)
	segments := domain.SplitTagPath(abs)
	if len(segments) < 2 {
		return target{kind: targetOther, abs: abs}
	}

	switch segments[0] {
	case "books":
		if id, ok := domain.ParseBookID(segments[1]); ok && len(segments) == 2 {
			return target{kind: targetBook, abs: abs, bookID: id}
		}
	case "tags":
		rest := segments[1:]
		last := rest[len(rest)-1]
		if id, ok := domain.ParseBookID(last); ok {
			owner := domain.JoinTagPath(rest[:len(rest)-1])
			if owner == "" {
				return target{kind: targetOther, abs: abs}
			}
			return target{kind: targetTagBook, abs: abs, bookID: id, tagPath: owner}
		}
		return target{kind: targetTag, abs: abs, tagPath: domain.JoinTagPath(rest)}
	}
	return target{kind: targetOther, abs: abs}
}

type mkdirCommand struct{}

func (mkdirCommand) Name() string     { return "mkdir" }
func (mkdirCommand) Synopsis() string { return "mkdir <tagpath>...  create tags, with ancestors" }

func (mkdirCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if len(args) == 0 {
		return nil, errors.New("missing tag path")
	}
	var lines []string
	for _, arg := range args {
		t := classify(env, arg)
		if t.kind != targetTag {
			return nil, fmt.Errorf("%s: %w", t.abs, domain.ErrInvalidDestination)
		}
		tag, err := env.Lib.GetOrCreateTag(ctx, t.tagPath)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("✓ created tag %s", tag.Path))
	}
	return out(strings.Join(lines, "\n")), nil
}

type lnCommand struct{}

func (lnCommand) Name() string     { return "ln" }
func (lnCommand) Synopsis() string { return "ln <bookpath> <tagpath>  tag a book" }

func (lnCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: ln <bookpath> <tagpath>")
	}
	src := classify(env, args[0])
	if src.kind != targetBook && src.kind != targetTagBook {
		return nil, fmt.Errorf("%s is not a book path", src.abs)
	}
	dst := classify(env, args[1])
	if dst.kind != targetTag {
		return nil, fmt.Errorf("%s: %w", dst.abs, domain.ErrInvalidDestination)
	}
	if err := env.Lib.AddTagToBook(ctx, src.bookID, dst.tagPath); err != nil {
		return nil, err
	}
	return out(fmt.Sprintf("✓ tagged book %d with %s", src.bookID, dst.tagPath)), nil
}

type mvCommand struct{}

func (mvCommand) Name() string     { return "mv" }
func (mvCommand) Synopsis() string { return "mv <src> <dst>  move a book between tags, or rename a tag" }

func (mvCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if len(args) != 2 {
		return nil, errors.New("usage: mv <src> <dst>")
	}
	src := classify(env, args[0])
	dst := classify(env, args[1])
	if dst.kind != targetTag {
		return nil, fmt.Errorf("%s: %w", dst.abs, domain.ErrInvalidDestination)
	}

	switch src.kind {
	case targetTagBook:
		// The source tag is checked up front so a bad source fails before
		// the destination association is committed.
		if _, err := env.Lib.GetTag(ctx, src.tagPath); err != nil {
			return nil, err
		}
		if err := env.Lib.AddTagToBook(ctx, src.bookID, dst.tagPath); err != nil {
			return nil, err
		}
		removed, err := env.Lib.RemoveTagFromBook(ctx, src.bookID, src.tagPath)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("✓ moved book %d from %s to %s", src.bookID, src.tagPath, dst.tagPath)
		if !removed {
			msg += fmt.Sprintf("\nWarning: book %d was not tagged %s", src.bookID, src.tagPath)
		}
		return out(msg), nil

	case targetTag:
		if err := env.Lib.RenameTag(ctx, src.tagPath, dst.tagPath); err != nil {
			return nil, err
		}
		return out(fmt.Sprintf("✓ renamed tag %s -> %s", src.tagPath, dst.tagPath)), nil

	case targetBook:
		return nil, fmt.Errorf("book %d is not inside a tag; use ln to tag it", src.bookID)

	default:
		return nil, fmt.Errorf("%s: %w", src.abs, domain.ErrInvalidDestination)
	}
}

type rmCommand struct{}

func (rmCommand) Name() string     { return "rm" }
func (rmCommand) Synopsis() string { return "rm [-r] <path>  untag a book, or delete a tag" }

func (rmCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	recursive := false
	var paths []string
	for _, arg := range args {
		if arg == "-r" {
			recursive = true
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) != 1 {
		return nil, errors.New("usage: rm [-r] <path>")
	}

	t := classify(env, paths[0])
	switch t.kind {
	case targetTagBook:
		removed, err := env.Lib.RemoveTagFromBook(ctx, t.bookID, t.tagPath)
		if err != nil {
			return nil, err
		}
		if !removed {
			return out(fmt.Sprintf("Warning: book %d is not tagged %s", t.bookID, t.tagPath)), nil
		}
		return out(fmt.Sprintf("✓ untagged book %d from %s", t.bookID, t.tagPath)), nil

	case targetTag:
		prompt := fmt.Sprintf("delete tag %s", t.tagPath)
		if recursive {
			prompt += " and all its descendants"
		}
		if env.Confirm != nil && !env.Confirm.Confirm(prompt+"?") {
			return out("aborted"), nil
		}
		if err := env.Lib.DeleteTag(ctx, t.tagPath, recursive); err != nil {
			return nil, err
		}
		return out(fmt.Sprintf("✓ deleted tag %s", t.tagPath)), nil

	case targetBook:
		return nil, fmt.Errorf("book %d cannot be deleted from the shell", t.bookID)

	default:
		return nil, fmt.Errorf("%s: %w", t.abs, domain.ErrInvalidDestination)
	}
}

type writeCommand struct{}

func (writeCommand) Name() string     { return "write" }
func (writeCommand) Synopsis() string { return "write <path> <text>...  write to a file node" }

func (writeCommand) Execute(ctx context.Context, env *Env, args []string, stdin *string) (*string, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: write <path> <text>...")
	}
	var content string
	switch {
	case stdin != nil && len(args) == 1:
		content = *stdin
	case len(args) >= 2:
		content = strings.Join(args[1:], " ")
	default:
		return nil, errors.New("usage: write <path> <text>...")
	}

	node, err := env.Tree.Resolve(ctx, args[0], env.Cwd)
	if err != nil {
		return nil, err
	}
	file, ok := node.(vfs.File)
	if !ok {
		return nil, &domain.WriteError{Path: node.Path(), Reason: "is a " + node.Kind().String() + ", not a file"}
	}
	if err := file.Write(ctx, content); err != nil {
		return nil, err
	}
	return out(fmt.Sprintf("✓ wrote %s", node.Path())), nil
}
