package vfs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"libris/internal/domain"
)

// booksDir lists one read-only book file per book ID
type booksDir struct {
	base
	tree *Tree
}

func (d *booksDir) Kind() Kind { return KindDirectory }

func (d *booksDir) List(ctx context.Context) ([]Node, error) {
	books, err := d.tree.lib.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(books))
	for _, b := range books {
		nodes = append(nodes, d.bookNode(b))
	}
	return nodes, nil
}

func (d *booksDir) Child(ctx context.Context, name string) (Node, error) {
	id, ok := domain.ParseBookID(name)
	if !ok {
		return nil, nil
	}
	book, err := d.tree.lib.GetBook(ctx, id)
	if errors.Is(err, domain.ErrBookNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.bookNode(*book), nil
}

func (d *booksDir) bookNode(book domain.Book) Node {
	name := strconv.FormatInt(book.ID, 10)
	return &bookFile{
		base: base{name: name, path: childPath(d, name), parent: d},
		tree: d.tree,
		id:   book.ID,
	}
}

// bookFile renders a book's metadata; it is never writable.
type bookFile struct {
	base
	tree *Tree
	id   int64
}

func (f *bookFile) Kind() Kind     { return KindFile }
func (f *bookFile) Writable() bool { return false }

func (f *bookFile) Read(ctx context.Context) (string, error) {
	book, err := f.tree.lib.GetBook(ctx, f.id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\n", book.ID)
	fmt.Fprintf(&b, "title: %s\n", book.Title)
	fmt.Fprintf(&b, "authors: %s\n", strings.Join(book.Authors, ", "))
	fmt.Fprintf(&b, "subjects: %s", strings.Join(book.Subjects, ", "))
	return b.String(), nil
}

func (f *bookFile) Write(ctx context.Context, content string) error {
	return &domain.WriteError{Path: f.path, Reason: "book entries are read-only"}
}
