package vfs

import (
	"context"
	"errors"
	"testing"

	"libris/internal/adapters/sqlite"
	"libris/internal/domain"
)

// newTestTree seeds an in-memory library:
//
//	book 1 "Dune" by Frank Herbert (Science Fiction), tagged SF/Classics
//	book 2 "Hyperion" by Dan Simmons (Science Fiction), tagged SF
func newTestTree(t *testing.T) (*Tree, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if _, err := store.AddBook(ctx, "Dune", []string{"Frank Herbert"}, []string{"Science Fiction"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddBook(ctx, "Hyperion", []string{"Dan Simmons"}, []string{"Science Fiction"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddTagToBook(ctx, 1, "SF/Classics"); err != nil {
		t.Fatal(err)
	}
	if err := store.AddTagToBook(ctx, 2, "SF"); err != nil {
		t.Fatal(err)
	}
	return New(store), store
}

func TestResolvePaths(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		path     string
		wantPath string
		wantKind Kind
	}{
		{name: "root", path: "/", wantPath: "/", wantKind: KindDirectory},
		{name: "books dir", path: "/books", wantPath: "/books", wantKind: KindDirectory},
		{name: "book file", path: "/books/1", wantPath: "/books/1", wantKind: KindFile},
		{name: "trailing slash", path: "/books/", wantPath: "/books", wantKind: KindDirectory},
		{name: "doubled slash", path: "//books///1", wantPath: "/books/1", wantKind: KindFile},
		{name: "tag", path: "/tags/SF", wantPath: "/tags/SF", wantKind: KindDirectory},
		{name: "nested tag", path: "/tags/SF/Classics", wantPath: "/tags/SF/Classics", wantKind: KindDirectory},
		{name: "book symlink", path: "/tags/SF/Classics/1", wantPath: "/tags/SF/Classics/1", wantKind: KindSymlink},
		{name: "metadata file", path: "/tags/SF/description", wantPath: "/tags/SF/description", wantKind: KindFile},
		{name: "author dir", path: "/authors/Frank Herbert", wantPath: "/authors/Frank Herbert", wantKind: KindDirectory},
		{name: "subject dir", path: "/subjects/Science Fiction", wantPath: "/subjects/Science Fiction", wantKind: KindDirectory},
		{name: "dot stays", path: "/tags/./SF", wantPath: "/tags/SF", wantKind: KindDirectory},
		{name: "dotdot climbs", path: "/tags/SF/..", wantPath: "/tags", wantKind: KindDirectory},
		{name: "dotdot at root", path: "/..", wantPath: "/", wantKind: KindDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tree.Resolve(ctx, tt.path, nil)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.path, err)
			}
			if node.Path() != tt.wantPath {
				t.Errorf("Resolve(%q).Path() = %q, want %q", tt.path, node.Path(), tt.wantPath)
			}
			if node.Kind() != tt.wantKind {
				t.Errorf("Resolve(%q).Kind() = %v, want %v", tt.path, node.Kind(), tt.wantKind)
			}
		})
	}
}

func TestResolveRelative(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	cwd, err := tree.Resolve(ctx, "/tags/SF", nil)
	if err != nil {
		t.Fatal(err)
	}

	node, err := tree.Resolve(ctx, "Classics", cwd)
	if err != nil {
		t.Fatal(err)
	}
	if node.Path() != "/tags/SF/Classics" {
		t.Errorf("relative resolve = %q", node.Path())
	}

	node, err = tree.Resolve(ctx, "../../books/2", cwd)
	if err != nil {
		t.Fatal(err)
	}
	if node.Path() != "/books/2" {
		t.Errorf("relative climb = %q", node.Path())
	}

	// Absolute paths ignore cwd.
	node, err = tree.Resolve(ctx, "/authors", cwd)
	if err != nil {
		t.Fatal(err)
	}
	if node.Path() != "/authors" {
		t.Errorf("absolute from cwd = %q", node.Path())
	}
}

func TestResolveNotFound(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	tests := []struct {
		path        string
		wantSegment string
	}{
		{path: "/nope", wantSegment: "nope"},
		{path: "/books/99", wantSegment: "99"},
		{path: "/tags/SF/Missing", wantSegment: "Missing"},
		{path: "/tags/SF/Classics/2", wantSegment: "2"}, // book 2 is tagged SF, not SF/Classics
		{path: "/authors/Nobody", wantSegment: "Nobody"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := tree.Resolve(ctx, tt.path, nil)
			if !errors.Is(err, domain.ErrPathNotFound) {
				t.Fatalf("Resolve(%q) error = %v, want ErrPathNotFound", tt.path, err)
			}
			var perr *domain.PathError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T", err)
			}
			if perr.Path != tt.path {
				t.Errorf("PathError.Path = %q, want %q", perr.Path, tt.path)
			}
			if perr.Segment != tt.wantSegment {
				t.Errorf("PathError.Segment = %q, want %q", perr.Segment, tt.wantSegment)
			}
		})
	}
}

func TestResolveFollowsSymlinkMidPath(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	// /tags/SF/Classics/1 is a symlink to /books/1; walking through it
	// lands on the book file, which has no children.
	_, err := tree.Resolve(ctx, "/tags/SF/Classics/1/whatever", nil)
	if !errors.Is(err, domain.ErrPathNotFound) {
		t.Errorf("expected ErrPathNotFound walking through a symlink into a file, got %v", err)
	}
}

// Every successfully resolved node appears in its parent's listing under
// its final path segment.
func TestResolvedNodesAreListed(t *testing.T) {
	tree, _ := newTestTree(t)
	ctx := context.Background()

	paths := []string{
		"/books/1",
		"/tags/SF",
		"/tags/SF/Classics",
		"/tags/SF/Classics/1",
		"/tags/SF/description",
		"/authors/Dan Simmons",
		"/subjects/Science Fiction/2",
	}
	for _, path := range paths {
		node, err := tree.Resolve(ctx, path, nil)
		if err != nil {
			t.Errorf("Resolve(%q): %v", path, err)
			continue
		}
		parent, ok := node.Parent().(Dir)
		if !ok {
			t.Errorf("parent of %q is not a directory", path)
			continue
		}
		children, err := parent.List(ctx)
		if err != nil {
			t.Errorf("List(%q): %v", parent.Path(), err)
			continue
		}
		found := false
		for _, child := range children {
			if child.Name() == node.Name() {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%q is resolvable but missing from %q's listing", path, parent.Path())
		}
	}
}

func TestTagNodeListingOrder(t *testing.T) {
	tree, store := newTestTree(t)
	ctx := context.Background()

	// A second child tag and a second book keep the ordering honest.
	if _, err := store.GetOrCreateTag(ctx, "SF/Anthologies"); err != nil {
		t.Fatal(err)
	}
	if err := store.AddTagToBook(ctx, 1, "SF"); err != nil {
		t.Fatal(err)
	}

	node, err := tree.Resolve(ctx, "/tags/SF", nil)
	if err != nil {
		t.Fatal(err)
	}
	children, err := node.(Dir).List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, c := range children {
		names = append(names, c.Name())
	}
	want := []string{"Anthologies", "Classics", "1", "2", "description", "color", "stats"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List order = %v, want child tags, then book symlinks, then metadata (%v)", names, want)
		}
	}
}

func TestSymlinkTarget(t *testing.T) {
	tree, _ := newTestTree(t)

	node, err := tree.Resolve(context.Background(), "/tags/SF/Classics/1", nil)
	if err != nil {
		t.Fatal(err)
	}
	link, ok := node.(Symlink)
	if !ok {
		t.Fatalf("node kind = %v, want symlink", node.Kind())
	}
	if link.Target() != "/books/1" {
		t.Errorf("Target = %q, want /books/1", link.Target())
	}
}
