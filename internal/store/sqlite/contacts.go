package sqlite

import (
	"context"
	"database/sql"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// contactColumns is the ordered list of columns selected in contact
// queries. Every contact query LEFT JOINs companies so the company is
// available without a second round trip. Must match scanContact.
const contactColumns = `c.id, c.first_name, c.last_name, c.email, c.phone, c.notes,
	c.starred, c.archived_at, c.company_id, c.created_at, c.updated_at,
	com.name, com.website`

const contactFrom = ` FROM contacts c LEFT JOIN companies com ON com.id = c.company_id`

// scanContact scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Contact, including the joined company when present.
func scanContact(scanner interface{ Scan(dest ...any) error }) (*domain.Contact, error) {
	var c domain.Contact

	var (
		email, phone, notes    sql.NullString
		archivedAt, companyID  sql.NullString
		starred                int
		createdAt, updatedAt   string
		companyName, companyWS sql.NullString
	)

	err := scanner.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&email,
		&phone,
		&notes,
		&starred,
		&archivedAt,
		&companyID,
		&createdAt,
		&updatedAt,
		&companyName,
		&companyWS,
	)
	if err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Notes = notes.String
	c.Starred = starred != 0
	c.CompanyID = companyID.String

	if c.ArchivedAt, err = parseNullableTime(archivedAt); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	if companyID.Valid && companyName.Valid {
		c.Company = &domain.Company{
			ID:      companyID.String,
			Name:    companyName.String,
			Website: companyWS.String,
		}
	}

	return &c, nil
}

// CreateContact inserts a new contact.
// Returns store.ErrAlreadyExists on a duplicate email.
func (s *Store) CreateContact(ctx context.Context, c *domain.Contact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, first_name, last_name, email, phone, notes,
			starred, archived_at, company_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.FirstName,
		c.LastName,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Notes),
		boolToInt(c.Starred),
		nullTime(c.ArchivedAt),
		nullString(c.CompanyID),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetContact retrieves a contact by ID, with its company joined in.
// Returns store.ErrNotFound if the contact does not exist.
func (s *Store) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+contactFrom+` WHERE c.id = ?`, id)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContact persists all mutable fields of a contact.
// Returns store.ErrNotFound if the contact does not exist and
// store.ErrAlreadyExists on a duplicate email.
func (s *Store) UpdateContact(ctx context.Context, c *domain.Contact) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts
		SET first_name = ?, last_name = ?, email = ?, phone = ?, notes = ?,
			starred = ?, archived_at = ?, company_id = ?, updated_at = ?
		WHERE id = ?`,
		c.FirstName,
		c.LastName,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Notes),
		boolToInt(c.Starred),
		nullTime(c.ArchivedAt),
		nullString(c.CompanyID),
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return requireAffected(res)
}

// DeleteContact removes a contact; its activities and tag links go
// with it via ON DELETE CASCADE.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListContacts runs a contact listing query: filter slice, optional
// search, and sort order.
func (s *Store) ListContacts(ctx context.Context, q store.ContactQuery) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + contactFrom
	var args []any

	switch q.Filter {
	case domain.FilterStarred:
		query += ` WHERE c.starred = 1 AND c.archived_at IS NULL`
	case domain.FilterArchived:
		query += ` WHERE c.archived_at IS NOT NULL`
	default:
		query += ` WHERE c.archived_at IS NULL`
	}

	if q.Search != "" {
		query += ` AND (LOWER(c.first_name) LIKE ?
			OR LOWER(c.last_name) LIKE ?
			OR LOWER(COALESCE(c.email, '')) LIKE ?
			OR LOWER(c.first_name || ' ' || c.last_name) LIKE ?)`
		p := likePattern(q.Search)
		args = append(args, p, p, p, p)
	}

	switch q.Sort {
	case domain.SortFirstName:
		query += ` ORDER BY LOWER(c.first_name), LOWER(c.last_name)`
	case domain.SortNewest:
		query += ` ORDER BY c.created_at DESC`
	case domain.SortCompany:
		query += ` ORDER BY LOWER(COALESCE(com.name, '')), LOWER(c.last_name), LOWER(c.first_name)`
	default:
		query += ` ORDER BY LOWER(c.last_name), LOWER(c.first_name)`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

// SetContactStarred toggles the star flag and returns the updated contact.
func (s *Store) SetContactStarred(ctx context.Context, id string, starred bool) (*domain.Contact, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET starred = ?, updated_at = ? WHERE id = ?`,
		boolToInt(starred), formatTime(timeNow()), id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetContact(ctx, id)
}

// SetContactArchived archives or restores a contact and returns it.
// Archiving stamps archived_at; restoring clears it.
func (s *Store) SetContactArchived(ctx context.Context, id string, archived bool) (*domain.Contact, error) {
	var archivedAt sql.NullString
	if archived {
		archivedAt = sql.NullString{String: formatTime(timeNow()), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET archived_at = ?, updated_at = ? WHERE id = ?`,
		archivedAt, formatTime(timeNow()), id)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.GetContact(ctx, id)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// requireAffected converts a zero-row update/delete into ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
