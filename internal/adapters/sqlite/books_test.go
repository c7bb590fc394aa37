package sqlite

import (
	"context"
	"errors"
	"testing"

	"libris/internal/domain"
)

func TestAddAndGetBook(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddBook(ctx, "The Left Hand of Darkness",
		[]string{"Ursula K. Le Guin"}, []string{"Science Fiction"})
	if err != nil {
		t.Fatal(err)
	}

	book, err := store.GetBook(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if book.Title != "The Left Hand of Darkness" {
		t.Errorf("Title = %q", book.Title)
	}
	if len(book.Authors) != 1 || book.Authors[0] != "Ursula K. Le Guin" {
		t.Errorf("Authors = %v", book.Authors)
	}
	if len(book.Subjects) != 1 || book.Subjects[0] != "Science Fiction" {
		t.Errorf("Subjects = %v", book.Subjects)
	}
}

func TestGetBookNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetBook(context.Background(), 404)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestAuthorsAreShared(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.AddBook(ctx, "A Wizard of Earthsea", []string{"Ursula K. Le Guin"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.AddBook(ctx, "The Tombs of Atuan", []string{"Ursula K. Le Guin"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	authors, err := store.ListAuthors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 1 {
		t.Fatalf("ListAuthors = %v, want one shared author row", authors)
	}

	books, err := store.BooksByAuthor(ctx, "Ursula K. Le Guin")
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 2 || books[0].ID != first || books[1].ID != second {
		t.Errorf("BooksByAuthor = %+v, want books %d and %d in order", books, first, second)
	}
}

func TestBooksBySubject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddBook(ctx, "Gödel, Escher, Bach", []string{"Douglas Hofstadter"},
		[]string{"Mathematics", "Philosophy"})
	if err != nil {
		t.Fatal(err)
	}

	subjects, err := store.ListSubjects(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 2 || subjects[0] != "Mathematics" || subjects[1] != "Philosophy" {
		t.Errorf("ListSubjects = %v, want alphabetical [Mathematics Philosophy]", subjects)
	}

	books, err := store.BooksBySubject(ctx, "Philosophy")
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 1 || books[0].ID != id {
		t.Errorf("BooksBySubject = %+v", books)
	}
}
