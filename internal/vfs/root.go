package vfs

import "context"

// rootNode is the static top of the tree
type rootNode struct {
	tree *Tree
}

func (r *rootNode) Name() string { return "/" }
func (r *rootNode) Path() string { return "/" }
func (r *rootNode) Parent() Node { return nil }
func (r *rootNode) Kind() Kind   { return KindDirectory }

func (r *rootNode) List(ctx context.Context) ([]Node, error) {
	return []Node{
		&booksDir{base: base{name: "books", path: "/books", parent: r}, tree: r.tree},
		&authorsDir{base: base{name: "authors", path: "/authors", parent: r}, tree: r.tree},
		&subjectsDir{base: base{name: "subjects", path: "/subjects", parent: r}, tree: r.tree},
		&tagsDir{base: base{name: "tags", path: "/tags", parent: r}, tree: r.tree},
	}, nil
}

func (r *rootNode) Child(ctx context.Context, name string) (Node, error) {
	children, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, nil
}
