package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"libris/internal/domain"
)

// AddBook inserts a book with its authors and subjects, creating the
// author and subject rows as needed. Returns the new book's ID.
func (s *Store) AddBook(ctx context.Context, title string, authors, subjects []string) (int64, error) {
	var bookID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO books (title) VALUES (?)`, title)
		if err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}
		bookID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		for _, name := range authors {
			id, err := upsertNamed(ctx, tx, "authors", name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO book_authors (book_id, author_id) VALUES (?, ?)`,
				bookID, id); err != nil {
				return err
			}
		}
		for _, name := range subjects {
			id, err := upsertNamed(ctx, tx, "subjects", name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO book_subjects (book_id, subject_id) VALUES (?, ?)`,
				bookID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bookID, nil
}

func upsertNamed(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT OR IGNORE INTO %s (name) VALUES (?)`, table), name); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, table), name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to look up %s %q: %w", table, name, err)
	}
	return id, nil
}

// GetBook returns the book with the given ID, or ErrBookNotFound.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	book := domain.Book{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT title FROM books WHERE id = ?`, id).Scan(&book.Title)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrBookNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachDetails(ctx, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns all books ordered by ID.
func (s *Store) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.queryBooks(ctx, `SELECT id, title FROM books ORDER BY id`)
}

// ListAuthors returns all author names in alphabetical order.
func (s *Store) ListAuthors(ctx context.Context) ([]string, error) {
	return s.queryNames(ctx, `SELECT name FROM authors ORDER BY name`)
}

// BooksByAuthor returns the books written by the named author, by ID.
func (s *Store) BooksByAuthor(ctx context.Context, name string) ([]domain.Book, error) {
	return s.queryBooks(ctx, `
		SELECT b.id, b.title FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		JOIN authors a ON a.id = ba.author_id
		WHERE a.name = ?
		ORDER BY b.id`, name)
}

// ListSubjects returns all subject names in alphabetical order.
func (s *Store) ListSubjects(ctx context.Context) ([]string, error) {
	return s.queryNames(ctx, `SELECT name FROM subjects ORDER BY name`)
}

// BooksBySubject returns the books filed under the named subject, by ID.
func (s *Store) BooksBySubject(ctx context.Context, name string) ([]domain.Book, error) {
	return s.queryBooks(ctx, `
		SELECT b.id, b.title FROM books b
		JOIN book_subjects bs ON bs.book_id = b.id
		JOIN subjects s ON s.id = bs.subject_id
		WHERE s.name = ?
		ORDER BY b.id`, name)
}

func (s *Store) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range books {
		if err := s.attachDetails(ctx, &books[i]); err != nil {
			return nil, err
		}
	}
	return books, nil
}

func (s *Store) attachDetails(ctx context.Context, book *domain.Book) error {
	authors, err := s.queryNames(ctx, `
		SELECT a.name FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = ?
		ORDER BY a.name`, book.ID)
	if err != nil {
		return err
	}
	subjects, err := s.queryNames(ctx, `
		SELECT s.name FROM subjects s
		JOIN book_subjects bs ON bs.subject_id = s.id
		WHERE bs.book_id = ?
		ORDER BY s.name`, book.ID)
	if err != nil {
		return err
	}
	book.Authors = authors
	book.Subjects = subjects
	return nil
}
