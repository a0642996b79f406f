package sqlite

import (
	"context"
	"database/sql"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// tagColumns must match the scan order in scanTag.
const tagColumns = `id, name, color, created_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on a duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, created_at)
		VALUES (?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.Color,
		formatTime(t.CreatedAt),
	)
	if err != nil && isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// AddContactTag links a tag to a contact. Re-linking an existing pair
// is a no-op.
func (s *Store) AddContactTag(ctx context.Context, contactID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_tags (contact_id, tag_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (contact_id, tag_id) DO NOTHING`,
		contactID,
		tagID,
		formatTime(timeNow()),
	)
	return err
}

// RemoveContactTag unlinks a tag from a contact. Removing a link that
// does not exist is a no-op.
func (s *Store) RemoveContactTag(ctx context.Context, contactID, tagID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM contact_tags WHERE contact_id = ? AND tag_id = ?`,
		contactID, tagID)
	return err
}

// ListContactTags returns a contact's tags ordered by name.
func (s *Store) ListContactTags(ctx context.Context, contactID string) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.color, t.created_at
		FROM tags t
		JOIN contact_tags ct ON ct.tag_id = t.id
		WHERE ct.contact_id = ?
		ORDER BY LOWER(t.name)`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
