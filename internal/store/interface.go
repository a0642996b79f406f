// Package store defines the persistence interface for the Rolodex server.
package store

import (
	"context"

	"github.com/rolodexapp/rolodex-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Contacts
	CreateContact(ctx context.Context, contact *domain.Contact) error
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	UpdateContact(ctx context.Context, contact *domain.Contact) error
	DeleteContact(ctx context.Context, id string) error
	ListContacts(ctx context.Context, q ContactQuery) ([]*domain.Contact, error)
	SetContactStarred(ctx context.Context, id string, starred bool) (*domain.Contact, error)
	SetContactArchived(ctx context.Context, id string, archived bool) (*domain.Contact, error)

	// Companies
	CreateCompany(ctx context.Context, company *domain.Company) error
	GetCompany(ctx context.Context, id string) (*domain.Company, error)
	UpdateCompany(ctx context.Context, company *domain.Company) error
	ListCompanies(ctx context.Context) ([]*domain.Company, error)
	ListCompanyContacts(ctx context.Context, companyID string) ([]*domain.Contact, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	AddContactTag(ctx context.Context, contactID, tagID string) error
	RemoveContactTag(ctx context.Context, contactID, tagID string) error
	ListContactTags(ctx context.Context, contactID string) ([]domain.Tag, error)

	// Activities
	CreateActivity(ctx context.Context, activity *domain.Activity) error
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, id string, kind domain.ActivityKind, body string) error
	DeleteActivity(ctx context.Context, id string) error
	ListContactActivities(ctx context.Context, contactID string, kind domain.ActivityKind) ([]*domain.Activity, error)
	ListActivities(ctx context.Context, q ActivityQuery) ([]*domain.Activity, error)
}
