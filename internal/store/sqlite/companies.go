package sqlite

import (
	"context"
	"database/sql"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// companyColumns must match the scan order in scanCompany.
const companyColumns = `id, name, website, created_at, updated_at`

func scanCompany(scanner interface{ Scan(dest ...any) error }) (*domain.Company, error) {
	var c domain.Company

	var (
		website              sql.NullString
		createdAt, updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&website,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Website = website.String
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a new company.
func (s *Store) CreateCompany(ctx context.Context, c *domain.Company) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, website, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID,
		c.Name,
		nullString(c.Website),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil && isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetCompany retrieves a company by ID.
// Returns store.ErrNotFound if the company does not exist.
func (s *Store) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)

	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCompany persists a company's mutable fields.
func (s *Store) UpdateCompany(ctx context.Context, c *domain.Company) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE companies SET name = ?, website = ?, updated_at = ? WHERE id = ?`,
		c.Name,
		nullString(c.Website),
		formatTime(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListCompanies returns all companies ordered by name, each carrying a
// denormalized count of its non-archived contacts.
func (s *Store) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+companyColumns+`,
			(SELECT COUNT(*) FROM contacts
			 WHERE company_id = companies.id AND archived_at IS NULL)
		FROM companies
		ORDER BY LOWER(name)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*domain.Company{}
	for rows.Next() {
		var c domain.Company
		var website sql.NullString
		var createdAt, updatedAt string
		err := rows.Scan(&c.ID, &c.Name, &website, &createdAt, &updatedAt, &c.ContactCount)
		if err != nil {
			return nil, err
		}
		c.Website = website.String
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

// ListCompanyContacts returns a company's active contacts ordered by
// first name, then last name.
func (s *Store) ListCompanyContacts(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+contactFrom+`
		WHERE c.company_id = ? AND c.archived_at IS NULL
		ORDER BY LOWER(c.first_name), LOWER(c.last_name)`, companyID)
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
