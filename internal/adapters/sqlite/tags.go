package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"libris/internal/domain"
)

const tagColumns = `id, name, path, parent_id, description, color, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (*domain.Tag, error) {
	var (
		tag      domain.Tag
		parentID sql.NullInt64
		created  int64
	)
	err := row.Scan(&tag.ID, &tag.Name, &tag.Path, &parentID, &tag.Description, &tag.Color, &created)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		tag.ParentID = &parentID.Int64
	}
	tag.CreatedAt = time.Unix(created, 0).UTC()
	return &tag, nil
}

// GetTag returns the tag at path, or ErrTagNotFound.
func (s *Store) GetTag(ctx context.Context, path string) (*domain.Tag, error) {
	path = domain.CleanTagPath(path)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE path = ?`, path)
	tag, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tag %q: %w", path, domain.ErrTagNotFound)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetOrCreateTag walks the path level by level, creating every missing
// ancestor. Calling it twice with the same path yields the same tag.
func (s *Store) GetOrCreateTag(ctx context.Context, path string) (*domain.Tag, error) {
	segments := domain.SplitTagPath(path)
	if len(segments) == 0 {
		return nil, &domain.ValidationError{Field: "path", Message: "tag path is empty"}
	}
	var tag *domain.Tag
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		tag, err = getOrCreateTagTx(ctx, tx, segments)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func getOrCreateTagTx(ctx context.Context, tx *sql.Tx, segments []string) (*domain.Tag, error) {
	var (
		current  *domain.Tag
		parentID *int64
	)
	for i, name := range segments {
		path := domain.JoinTagPath(segments[:i+1])
		row := tx.QueryRowContext(ctx,
			`SELECT `+tagColumns+` FROM tags WHERE path = ?`, path)
		tag, err := scanTag(row)
		if err == sql.ErrNoRows {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO tags (name, path, parent_id, created_at)
				VALUES (?, ?, ?, ?)`,
				name, path, parentID, time.Now().Unix())
			if err != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", path, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return nil, err
			}
			tag = &domain.Tag{
				ID:        id,
				Name:      name,
				Path:      path,
				ParentID:  parentID,
				CreatedAt: time.Now().UTC(),
			}
		} else if err != nil {
			return nil, err
		}
		current = tag
		parentID = &tag.ID
	}
	return current, nil
}

// RootTags returns the top-level tags in alphabetical order.
func (s *Store) RootTags(ctx context.Context) ([]domain.Tag, error) {
	return s.queryTags(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE parent_id IS NULL ORDER BY name`)
}

// ChildTags returns the direct children of the tag at path, alphabetically.
func (s *Store) ChildTags(ctx context.Context, path string) ([]domain.Tag, error) {
	tag, err := s.GetTag(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.queryTags(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE parent_id = ? ORDER BY name`, tag.ID)
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, rows.Err()
}

// RenameTag moves the tag at oldPath to newPath, rewriting every
// descendant's path with the same prefix substitution in one transaction.
// Book associations are untouched. Fails if newPath already exists.
func (s *Store) RenameTag(ctx context.Context, oldPath, newPath string) error {
	oldPath = domain.CleanTagPath(oldPath)
	newPath = domain.CleanTagPath(newPath)
	if newPath == "" {
		return &domain.ValidationError{Field: "path", Message: "new tag path is empty"}
	}
	if oldPath == newPath {
		return nil
	}
	if domain.IsDescendantPath(newPath, oldPath) {
		return &domain.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("cannot move %q inside itself", oldPath),
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+tagColumns+` FROM tags WHERE path = ?`, oldPath)
		tag, err := scanTag(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("tag %q: %w", oldPath, domain.ErrTagNotFound)
		}
		if err != nil {
			return err
		}

		var exists int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tags WHERE path = ?`, newPath).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("tag %q: %w", newPath, domain.ErrTagExists)
		}

		// Missing ancestors of the destination are created alongside.
		var parentID *int64
		if parentPath := domain.ParentTagPath(newPath); parentPath != "" {
			parent, err := getOrCreateTagTx(ctx, tx, domain.SplitTagPath(parentPath))
			if err != nil {
				return err
			}
			parentID = &parent.ID
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE tags SET name = ?, path = ?, parent_id = ? WHERE id = ?`,
			domain.TagLeaf(newPath), newPath, parentID, tag.ID)
		if err != nil {
			return fmt.Errorf("failed to rename tag: %w", err)
		}

		// substr counts characters, not bytes, so the offset past the old
		// prefix must be in runes.
		_, err = tx.ExecContext(ctx,
			`UPDATE tags SET path = ? || substr(path, ?) WHERE path LIKE ? ESCAPE '\'`,
			newPath, utf8.RuneCountInString(oldPath)+1, escapeLike(oldPath)+`/%`)
		if err != nil {
			return fmt.Errorf("failed to rename descendants: %w", err)
		}
		return nil
	})
}

// DeleteTag removes the tag at path. With recursive false it fails with
// ErrTagHasChildren when the tag has children; with recursive true it
// removes the tag, all descendants, and their book associations in one
// transaction.
func (s *Store) DeleteTag(ctx context.Context, path string, recursive bool) error {
	path = domain.CleanTagPath(path)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+tagColumns+` FROM tags WHERE path = ?`, path)
		tag, err := scanTag(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("tag %q: %w", path, domain.ErrTagNotFound)
		}
		if err != nil {
			return err
		}

		var children int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tags WHERE parent_id = ?`, tag.ID).Scan(&children)
		if err != nil {
			return err
		}
		if children > 0 && !recursive {
			return fmt.Errorf("tag %q: %w", path, domain.ErrTagHasChildren)
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT id FROM tags WHERE path = ? OR path LIKE ? ESCAPE '\'`,
			path, escapeLike(path)+`/%`)
		if err != nil {
			return err
		}
		var ids []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM book_tags WHERE tag_id IN (`+placeholders+`)`, args...); err != nil {
			return fmt.Errorf("failed to delete book associations: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tags WHERE id IN (`+placeholders+`)`, args...); err != nil {
			return fmt.Errorf("failed to delete tags: %w", err)
		}
		return nil
	})
}

// AddTagToBook tags a book, creating the tag hierarchy as needed. Adding
// an existing association is a no-op success.
func (s *Store) AddTagToBook(ctx context.Context, bookID int64, path string) error {
	segments := domain.SplitTagPath(path)
	if len(segments) == 0 {
		return &domain.ValidationError{Field: "path", Message: "tag path is empty"}
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM books WHERE id = ?`, bookID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("book %d: %w", bookID, domain.ErrBookNotFound)
		}

		tag, err := getOrCreateTagTx(ctx, tx, segments)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO book_tags (book_id, tag_id) VALUES (?, ?)`,
			bookID, tag.ID)
		return err
	})
}

// RemoveTagFromBook removes the association between a book and the tag at
// path. Returns false when no association existed; callers report that as
// a warning, not an error.
func (s *Store) RemoveTagFromBook(ctx context.Context, bookID int64, path string) (bool, error) {
	var removed bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cleaned := domain.CleanTagPath(path)
		row := tx.QueryRowContext(ctx,
			`SELECT `+tagColumns+` FROM tags WHERE path = ?`, cleaned)
		tag, err := scanTag(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("tag %q: %w", cleaned, domain.ErrTagNotFound)
		}
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM book_tags WHERE book_id = ? AND tag_id = ?`, bookID, tag.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = n > 0
		return nil
	})
	return removed, err
}

// BooksWithTag returns the books tagged at path, ordered by ID. With
// includeSubtags true the whole subtree counts.
func (s *Store) BooksWithTag(ctx context.Context, path string, includeSubtags bool) ([]domain.Book, error) {
	path = domain.CleanTagPath(path)
	if _, err := s.GetTag(ctx, path); err != nil {
		return nil, err
	}

	query := `
		SELECT DISTINCT b.id, b.title FROM books b
		JOIN book_tags bt ON bt.book_id = b.id
		JOIN tags t ON t.id = bt.tag_id
		WHERE t.path = ?`
	args := []any{path}
	if includeSubtags {
		query += ` OR t.path LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(path)+`/%`)
	}
	query += ` ORDER BY b.id`

	return s.queryBooks(ctx, query, args...)
}

// TagStats summarizes the tag at path: depth, books in its subtree,
// direct child count, and stored metadata.
func (s *Store) TagStats(ctx context.Context, path string) (*domain.TagStats, error) {
	tag, err := s.GetTag(ctx, path)
	if err != nil {
		return nil, err
	}

	var bookCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT bt.book_id) FROM book_tags bt
		JOIN tags t ON t.id = bt.tag_id
		WHERE t.path = ? OR t.path LIKE ? ESCAPE '\'`,
		tag.Path, escapeLike(tag.Path)+`/%`).Scan(&bookCount)
	if err != nil {
		return nil, err
	}

	var subtagCount int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE parent_id = ?`, tag.ID).Scan(&subtagCount)
	if err != nil {
		return nil, err
	}

	return &domain.TagStats{
		Depth:       domain.TagDepth(tag.Path),
		BookCount:   bookCount,
		SubtagCount: subtagCount,
		Description: tag.Description,
		Color:       tag.Color,
		CreatedAt:   tag.CreatedAt,
	}, nil
}

// SetTagDescription stores a tag's description verbatim.
func (s *Store) SetTagDescription(ctx context.Context, path, description string) error {
	return s.updateTagField(ctx, path, "description", description)
}

// SetTagColor stores a tag's color. The value is expected to be
// normalized already (see domain.NormalizeColor).
func (s *Store) SetTagColor(ctx context.Context, path, color string) error {
	return s.updateTagField(ctx, path, "color", color)
}

func (s *Store) updateTagField(ctx context.Context, path, field, value string) error {
	path = domain.CleanTagPath(path)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE tags SET `+field+` = ? WHERE path = ?`, value, path)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("tag %q: %w", path, domain.ErrTagNotFound)
		}
		return nil
	})
}
