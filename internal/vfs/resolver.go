package vfs

import (
	"context"
	"fmt"
	"strings"

	"libris/internal/domain"
)

// Resolve walks path segment by segment starting from cwd, or from the
// root when path is absolute or cwd is nil. Empty segments and a trailing
// slash are skipped, "." stays put, ".." moves to the stored parent (the
// root's ".." is the root). A symlink reached with segments still to walk
// is followed first. Resolution never mutates the tree; the first
// unmatched segment aborts with a PathError naming the attempted path and
// the failing segment.
func (t *Tree) Resolve(ctx context.Context, path string, cwd Node) (Node, error) {
	var current Node
	if cwd == nil || strings.HasPrefix(path, "/") {
		current = t.Root()
	} else {
		current = cwd
	}

	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			if parent := current.Parent(); parent != nil {
				current = parent
			}
			continue
		}

		// Follow a symlink before descending into it.
		if link, ok := current.(Symlink); ok {
			resolved, err := t.Resolve(ctx, link.Target(), nil)
			if err != nil {
				return nil, err
			}
			current = resolved
		}

		dir, ok := current.(Dir)
		if !ok {
			return nil, &domain.PathError{Path: path, Segment: segment}
		}
		child, err := dir.Child(ctx, segment)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, &domain.PathError{Path: path, Segment: segment}
		}
		current = child
	}
	return current, nil
}

// ReadFile resolves path to a file, following a final symlink, and
// returns its content.
func (t *Tree) ReadFile(ctx context.Context, path string, cwd Node) (string, error) {
	node, err := t.Resolve(ctx, path, cwd)
	if err != nil {
		return "", err
	}
	if link, ok := node.(Symlink); ok {
		node, err = t.Resolve(ctx, link.Target(), nil)
		if err != nil {
			return "", err
		}
	}
	file, ok := node.(File)
	if !ok {
		return "", fmt.Errorf("%s is a %s, not a file", node.Path(), node.Kind())
	}
	return file.Read(ctx)
}
