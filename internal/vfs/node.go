// Package vfs presents the library as a Unix-like tree: books, authors,
// subjects, and the tag hierarchy become directories, files, and symlinks.
// Nodes are ephemeral view objects; their children are computed freshly on
// every access, so the tree always reflects current persisted data.
package vfs

import (
	"context"

	"libris/internal/ports"
)

// Kind discriminates the three node capabilities
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Node is a unit of the tree. Parent is a back-reference, not ownership;
// the root's parent is nil.
type Node interface {
	Name() string
	Path() string
	Parent() Node
	Kind() Kind
}

// Dir is a node with children. Child returns (nil, nil) when no entry of
// that name exists; the resolver turns that into a PathError.
type Dir interface {
	Node
	List(ctx context.Context) ([]Node, error)
	Child(ctx context.Context, name string) (Node, error)
}

// File is a node with text content
type File interface {
	Node
	Read(ctx context.Context) (string, error)
	Writable() bool
	Write(ctx context.Context, content string) error
}

// Symlink is a node that holds no content and resolves to another
// canonical path.
type Symlink interface {
	Node
	Target() string
}

// Tree materializes nodes on demand from the library.
type Tree struct {
	lib ports.Library
}

// New creates a tree over the given library
func New(lib ports.Library) *Tree {
	return &Tree{lib: lib}
}

// Root returns the root directory
func (t *Tree) Root() Dir {
	return &rootNode{tree: t}
}

// base carries the identity shared by every node kind
type base struct {
	name   string
	path   string
	parent Node
}

func (b *base) Name() string { return b.name }
func (b *base) Path() string { return b.path }
func (b *base) Parent() Node { return b.parent }

// childPath joins a parent path with a child name
func childPath(parent Node, name string) string {
	if parent.Path() == "/" {
		return "/" + name
	}
	return parent.Path() + "/" + name
}
