package ports

import (
	"context"

	"libris/internal/domain"
)

// Library provides persistent access to books, authors, subjects, and the
// tag hierarchy. Every mutating operation runs in its own transaction:
// it either commits fully or leaves no trace.
type Library interface {
	// Book queries
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	ListAuthors(ctx context.Context) ([]string, error)
	BooksByAuthor(ctx context.Context, name string) ([]domain.Book, error)
	ListSubjects(ctx context.Context) ([]string, error)
	BooksBySubject(ctx context.Context, name string) ([]domain.Book, error)

	// Tag hierarchy
	GetOrCreateTag(ctx context.Context, path string) (*domain.Tag, error)
	GetTag(ctx context.Context, path string) (*domain.Tag, error)
	RootTags(ctx context.Context) ([]domain.Tag, error)
	ChildTags(ctx context.Context, path string) ([]domain.Tag, error)
	RenameTag(ctx context.Context, oldPath, newPath string) error
	DeleteTag(ctx context.Context, path string, recursive bool) error

	// Book-tag associations
	AddTagToBook(ctx context.Context, bookID int64, path string) error
	RemoveTagFromBook(ctx context.Context, bookID int64, path string) (bool, error)
	BooksWithTag(ctx context.Context, path string, includeSubtags bool) ([]domain.Book, error)

	// Tag metadata
	TagStats(ctx context.Context, path string) (*domain.TagStats, error)
	SetTagDescription(ctx context.Context, path, description string) error
	SetTagColor(ctx context.Context, path, color string) error
}
