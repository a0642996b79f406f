package sqlite

import (
	"context"
	"database/sql"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// activityColumns joins the owning contact's name for feed rendering.
// Must match the scan order in scanActivity.
const activityColumns = `a.id, a.contact_id, a.kind, a.body, a.created_at,
	c.first_name, c.last_name`

const activityFrom = ` FROM activities a JOIN contacts c ON c.id = a.contact_id`

func scanActivity(scanner interface{ Scan(dest ...any) error }) (*domain.Activity, error) {
	var a domain.Activity
	var createdAt string

	err := scanner.Scan(
		&a.ID,
		&a.ContactID,
		&a.Kind,
		&a.Body,
		&createdAt,
		&a.ContactFirstName,
		&a.ContactLastName,
	)
	if err != nil {
		return nil, err
	}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateActivity inserts a new activity record.
func (s *Store) CreateActivity(ctx context.Context, a *domain.Activity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (id, contact_id, kind, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID,
		a.ContactID,
		a.Kind,
		a.Body,
		formatTime(a.CreatedAt),
	)
	return err
}

// GetActivity retrieves an activity by ID with the contact name joined.
// Returns store.ErrNotFound if the activity does not exist.
func (s *Store) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+activityFrom+` WHERE a.id = ?`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateActivity changes an activity's kind and body. The owning
// contact and creation time are fixed.
func (s *Store) UpdateActivity(ctx context.Context, id string, kind domain.ActivityKind, body string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE activities SET kind = ?, body = ? WHERE id = ?`,
		kind, body, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteActivity removes an activity.
func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListContactActivities returns a contact's activities newest first,
// optionally narrowed to one kind.
func (s *Store) ListContactActivities(ctx context.Context, contactID string, kind domain.ActivityKind) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + activityFrom + ` WHERE a.contact_id = ?`
	args := []any{contactID}

	if kind != "" {
		query += ` AND a.kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY a.created_at DESC`

	return s.queryActivities(ctx, query, args...)
}

// ListActivities returns the global feed newest first. The search term
// matches the body or the contact's name, case-insensitively.
func (s *Store) ListActivities(ctx context.Context, q store.ActivityQuery) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + activityFrom + ` WHERE 1=1`
	var args []any

	if q.Kind != "" {
		query += ` AND a.kind = ?`
		args = append(args, q.Kind)
	}
	if q.Search != "" {
		query += ` AND (LOWER(a.body) LIKE ?
			OR LOWER(c.first_name) LIKE ?
			OR LOWER(c.last_name) LIKE ?)`
		p := likePattern(q.Search)
		args = append(args, p, p, p)
	}
	query += ` ORDER BY a.created_at DESC`

	return s.queryActivities(ctx, query, args...)
}

func (s *Store) queryActivities(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}
