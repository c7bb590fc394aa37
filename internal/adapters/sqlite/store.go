package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"libris/internal/ports"

	_ "modernc.org/sqlite"
)

// Store implements ports.Library using SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements Library
var _ ports.Library = (*Store)(nil)

// Open opens (or creates) the library database at path. Pass ":memory:"
// for an in-process database, as the tests do.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		// Expand ~ in path
		if strings.HasPrefix(path, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			path = filepath.Join(home, path[1:])
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The shell is a single synchronous session; one connection also keeps
	// an in-memory database from being split across the pool.
	db.SetMaxOpenConns(1)

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS book_authors (
			book_id INTEGER NOT NULL REFERENCES books(id),
			author_id INTEGER NOT NULL REFERENCES authors(id),
			PRIMARY KEY (book_id, author_id)
		);
		CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS book_subjects (
			book_id INTEGER NOT NULL REFERENCES books(id),
			subject_id INTEGER NOT NULL REFERENCES subjects(id),
			PRIMARY KEY (book_id, subject_id)
		);
		CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			path TEXT NOT NULL UNIQUE,
			parent_id INTEGER REFERENCES tags(id),
			description TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS book_tags (
			book_id INTEGER NOT NULL REFERENCES books(id),
			tag_id INTEGER NOT NULL REFERENCES tags(id),
			PRIMARY KEY (book_id, tag_id)
		);
		CREATE INDEX IF NOT EXISTS idx_tags_parent ON tags(parent_id);
		CREATE INDEX IF NOT EXISTS idx_book_tags_tag ON book_tags(tag_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withTx runs fn inside a transaction: commit on success, rollback on any
// error, so a failed operation never leaves partial state.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so a tag path can be used as a
// literal prefix with ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
