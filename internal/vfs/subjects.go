package vfs

import (
	"context"

	"libris/internal/domain"
)

// subjectsDir mirrors the authors branch, keyed by subject name
type subjectsDir struct {
	base
	tree *Tree
}

func (d *subjectsDir) Kind() Kind { return KindDirectory }

func (d *subjectsDir) List(ctx context.Context) ([]Node, error) {
	names, err := d.tree.lib.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, d.subjectNode(name))
	}
	return nodes, nil
}

func (d *subjectsDir) Child(ctx context.Context, name string) (Node, error) {
	names, err := d.tree.lib.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == name {
			return d.subjectNode(name), nil
		}
	}
	return nil, nil
}

func (d *subjectsDir) subjectNode(name string) Node {
	return &subjectDir{
		base:    base{name: name, path: childPath(d, name), parent: d},
		tree:    d.tree,
		subject: name,
	}
}

type subjectDir struct {
	base
	tree    *Tree
	subject string
}

func (d *subjectDir) Kind() Kind { return KindDirectory }

func (d *subjectDir) List(ctx context.Context) ([]Node, error) {
	books, err := d.tree.lib.BooksBySubject(ctx, d.subject)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(books))
	for _, b := range books {
		nodes = append(nodes, newBookLink(d, b.ID))
	}
	return nodes, nil
}

func (d *subjectDir) Child(ctx context.Context, name string) (Node, error) {
	id, ok := domain.ParseBookID(name)
	if !ok {
		return nil, nil
	}
	books, err := d.tree.lib.BooksBySubject(ctx, d.subject)
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
