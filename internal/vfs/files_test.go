package vfs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"libris/internal/domain"
)

func resolveFile(t *testing.T, tree *Tree, path string) File {
	t.Helper()
	node, err := tree.Resolve(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", path, err)
	}
	file, ok := node.(File)
	if !ok {
		t.Fatalf("%q is a %v, want a file", path, node.Kind())
	}
	return file
}

func TestBookFileContent(t *testing.T) {
	tree, _ := newTestTree(t)

	file := resolveFile(t, tree, "/books/1")
	content, err := file.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := "id: 1\ntitle: Dune\nauthors: Frank Herbert\nsubjects: Science Fiction"
	if content != want {
		t.Errorf("book content = %q, want %q", content, want)
	}

	if file.Writable() {
		t.Error("book files must not be writable")
	}
	err = file.Write(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotWritable) {
		t.Errorf("Write error = %v, want ErrNotWritable", err)
	}
}

func TestDescriptionWriteTrimsTrailingWhitespace(t *testing.T) {
	tree, store := newTestTree(t)
	ctx := context.Background()

	file := resolveFile(t, tree, "/tags/SF/description")
	if !file.Writable() {
		t.Fatal("description must be writable")
	}
	if err := file.Write(ctx, "space opera and such  \n"); err != nil {
		t.Fatal(err)
	}

	tag, err := store.GetTag(ctx, "SF")
	if err != nil {
		t.Fatal(err)
	}
	if tag.Description != "space opera and such" {
		t.Errorf("Description = %q, want trailing whitespace trimmed", tag.Description)
	}

	// Reads always reflect the store, not the node's creation time.
	content, err := file.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if content != "space opera and such" {
		t.Errorf("Read = %q", content)
	}
}

func TestColorWriteNormalizes(t *testing.T) {
	tree, store := newTestTree(t)
	ctx := context.Background()

	file := resolveFile(t, tree, "/tags/SF/color")
	if err := file.Write(ctx, "4caf50\n"); err != nil {
		t.Fatal(err)
	}
	tag, err := store.GetTag(ctx, "SF")
	if err != nil {
		t.Fatal(err)
	}
	if tag.Color != "#4caf50" {
		t.Errorf("Color = %q, want #4caf50", tag.Color)
	}

	// A rejected write leaves the previous value intact.
	var verr *domain.ValidationError
	err = file.Write(ctx, "notacolor")
	if !errors.As(err, &verr) {
		t.Fatalf("Write error = %v, want *ValidationError", err)
	}
	tag, err = store.GetTag(ctx, "SF")
	if err != nil {
		t.Fatal(err)
	}
	if tag.Color != "#4caf50" {
		t.Errorf("Color after rejected write = %q, want #4caf50", tag.Color)
	}
}

func TestStatsFileIsReadOnly(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	file := resolveFile(t, tree, "/tags/SF/stats")
	if file.Writable() {
		t.Error("stats must not be writable")
	}
	if err := file.Write(ctx, "x"); !errors.Is(err, domain.ErrNotWritable) {
		t.Errorf("Write error = %v, want ErrNotWritable", err)
	}

	content, err := file.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"depth: 1", "books: 2", "subtags: 1"} {
		if !strings.Contains(content, line) {
			t.Errorf("stats missing %q:\n%s", line, content)
		}
	}
	if !strings.HasPrefix(content, "depth:") {
		t.Errorf("stats should start with depth, got:\n%s", content)
	}
}

func TestReadFileFollowsFinalSymlink(t *testing.T) {
	tree, _ := newTestTree(t)

	content, err := tree.ReadFile(context.Background(), "/tags/SF/Classics/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(content, "title: Dune") {
		t.Errorf("symlink read = %q, want the target book's content", content)
	}

	// Reading a directory is an error, not a PathError.
	_, err = tree.ReadFile(context.Background(), "/tags/SF", nil)
	if err == nil {
		t.Error("expected an error reading a directory")
	}
	if errors.Is(err, domain.ErrPathNotFound) {
		t.Error("a resolvable directory must not read as not-found")
	}
}
