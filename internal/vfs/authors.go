package vfs

import (
	"context"
	"strconv"

	"libris/internal/domain"
)

// authorsDir lists one directory per author name
type authorsDir struct {
	base
	tree *Tree
}

func (d *authorsDir) Kind() Kind { return KindDirectory }

func (d *authorsDir) List(ctx context.Context) ([]Node, error) {
	names, err := d.tree.lib.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, d.authorNode(name))
	}
	return nodes, nil
}

func (d *authorsDir) Child(ctx context.Context, name string) (Node, error) {
	names, err := d.tree.lib.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == name {
			return d.authorNode(name), nil
		}
	}
	return nil, nil
}

func (d *authorsDir) authorNode(name string) Node {
	return &authorDir{
		base:   base{name: name, path: childPath(d, name), parent: d},
		tree:   d.tree,
		author: name,
	}
}

// authorDir holds symlinks to the author's books
type authorDir struct {
	base
	tree   *Tree
	author string
}

func (d *authorDir) Kind() Kind { return KindDirectory }

func (d *authorDir) List(ctx context.Context) ([]Node, error) {
	books, err := d.tree.lib.BooksByAuthor(ctx, d.author)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(books))
	for _, b := range books {
		nodes = append(nodes, newBookLink(d, b.ID))
	}
	return nodes, nil
}

func (d *authorDir) Child(ctx context.Context, name string) (Node, error) {
	id, ok := domain.ParseBookID(name)
	if !ok {
		return nil, nil
	}
	books, err := d.tree.lib.BooksByAuthor(ctx, d.author)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		if b.ID == id {
			return newBookLink(d, id), nil
		}
	}
	return nil, nil
}

// newBookLink builds a symlink child pointing at /books/<id>
func newBookLink(parent Dir, id int64) Node {
	name := strconv.FormatInt(id, 10)
	return &bookLink{
		base:   base{name: name, path: childPath(parent, name), parent: parent},
		target: "/books/" + name,
	}
}

// bookLink never holds content; it always resolves to /books/<id>.
type bookLink struct {
	base
	target string
}

func (l *bookLink) Kind() Kind     { return KindSymlink }
func (l *bookLink) Target() string { return l.target }
