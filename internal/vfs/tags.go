package vfs

import (
	"context"
	"errors"

	"libris/internal/domain"
)

// tagsDir lists the root-level tags
type tagsDir struct {
	base
	tree *Tree
}

func (d *tagsDir) Kind() Kind { return KindDirectory }

func (d *tagsDir) List(ctx context.Context) ([]Node, error) {
	tags, err := d.tree.lib.RootTags(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(tags))
	for _, t := range tags {
		nodes = append(nodes, newTagNode(d.tree, d, t))
	}
	return nodes, nil
}

func (d *tagsDir) Child(ctx context.Context, name string) (Node, error) {
	tag, err := d.tree.lib.GetTag(ctx, name)
	if errors.Is(err, domain.ErrTagNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if tag.ParentID != nil {
		return nil, nil
	}
	return newTagNode(d.tree, d, *tag), nil
}

func newTagNode(tree *Tree, parent Dir, tag domain.Tag) *tagNode {
	return &tagNode{
		base: base{name: tag.Name, path: childPath(parent, tag.Name), parent: parent},
		tree: tree,
		tag:  tag,
	}
}

// tagNode exposes a tag as a directory. Children come in a fixed order:
// child tags (alphabetical), book symlinks (by ID), then the metadata
// files description, color, and stats.
type tagNode struct {
	base
	tree *Tree
	tag  domain.Tag
}

func (d *tagNode) Kind() Kind { return KindDirectory }

func (d *tagNode) List(ctx context.Context) ([]Node, error) {
	children, err := d.tree.lib.ChildTags(ctx, d.tag.Path)
	if err != nil {
		return nil, err
	}
	books, err := d.tree.lib.BooksWithTag(ctx, d.tag.Path, false)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(children)+len(books)+3)
	for _, t := range children {
		nodes = append(nodes, newTagNode(d.tree, d, t))
	}
	for _, b := range books {
		nodes = append(nodes, newBookLink(d, b.ID))
	}
	for _, meta := range metadataFileNames {
		nodes = append(nodes, d.metadataFile(meta))
	}
	return nodes, nil
}

func (d *tagNode) Child(ctx context.Context, name string) (Node, error) {
	for _, meta := range metadataFileNames {
		if name == meta {
			return d.metadataFile(name), nil
		}
	}

	if id, ok := domain.ParseBookID(name); ok {
		books, err := d.tree.lib.BooksWithTag(ctx, d.tag.Path, false)
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

	child, err := d.tree.lib.GetTag(ctx, d.tag.Path+"/"+name)
	if errors.Is(err, domain.ErrTagNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return newTagNode(d.tree, d, *child), nil
}

func (d *tagNode) metadataFile(name string) Node {
	return &tagMetaFile{
		base:    base{name: name, path: childPath(d, name), parent: d},
		tree:    d.tree,
		tagPath: d.tag.Path,
		field:   name,
	}
}
