// Package domain defines the core entity records of the contact manager.
package domain

import (
	"strings"
	"time"
)

// Contact represents a person in the rolodex.
// Email is optional; when present it must be unique (case-insensitive).
// An archived contact keeps its data but drops out of the default listing.
type Contact struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name" validate:"required"`
	LastName   string     `json:"last_name" validate:"required"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string     `json:"phone,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Starred    bool       `json:"starred"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CompanyID  string     `json:"company_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Company is populated on reads when the contact belongs to one.
	Company *Company `json:"company,omitempty"`
	// Tags is populated on detail reads, ordered by name.
	Tags []Tag `json:"tags,omitempty"`
}

// FullName returns "First Last" for display and search.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Archived reports whether the contact is archived.
func (c *Contact) Archived() bool {
	return c.ArchivedAt != nil
}

// Touch updates the UpdatedAt timestamp.
func (c *Contact) Touch() {
	c.UpdatedAt = time.Now()
}

// ContactFilter selects which slice of the rolodex a listing shows.
type ContactFilter string

const (
	// FilterActive is the default: not archived.
	FilterActive ContactFilter = "active"
	// FilterStarred shows starred contacts that are not archived.
	FilterStarred ContactFilter = "starred"
	// FilterArchived shows archived contacts only.
	FilterArchived ContactFilter = "archived"
)

// ParseContactFilter maps a query parameter to a filter, treating
// anything unrecognized (including blank) as the active default.
func ParseContactFilter(s string) ContactFilter {
	switch ContactFilter(s) {
	case FilterStarred:
		return FilterStarred
	case FilterArchived:
		return FilterArchived
	default:
		return FilterActive
	}
}

// ContactSort names a listing order.
type ContactSort string

const (
	// SortLastName is the default: case-insensitive last name, then first.
	SortLastName ContactSort = "last_name"
	// SortFirstName orders by case-insensitive first name.
	SortFirstName ContactSort = "first_name"
	// SortNewest orders by creation time, newest first.
	SortNewest ContactSort = "created_at"
	// SortCompany orders by company name; contacts without a company
	// collate as the empty string and sort first.
	SortCompany ContactSort = "company"
)

// ParseContactSort maps a query parameter to a sort, defaulting to
// last name for unrecognized values.
func ParseContactSort(s string) ContactSort {
	switch ContactSort(s) {
	case SortFirstName:
		return SortFirstName
	case SortNewest:
		return SortNewest
	case SortCompany:
		return SortCompany
	default:
		return SortLastName
	}
}
