// Package service implements the application's use cases on top of the
// store, enforcing validation and translating storage errors into
// domain errors.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/errors"
	"github.com/rolodexapp/rolodex-server/internal/id"
	"github.com/rolodexapp/rolodex-server/internal/store"
	"github.com/rolodexapp/rolodex-server/internal/validation"
)

// ContactInput carries the submitted fields of a contact form.
type ContactInput struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone"`
	Notes     string   `json:"notes"`
	CompanyID string   `json:"company_id"`
	TagIDs    []string `json:"tag_ids"`
}

// ContactService implements contact use cases.
type ContactService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewContactService creates a contact service.
func NewContactService(s store.Store, v *validation.Validator, logger *slog.Logger) *ContactService {
	return &ContactService{store: s, validator: v, logger: logger}
}

// List returns contacts matching the query.
func (s *ContactService) List(ctx context.Context, q store.ContactQuery) ([]*domain.Contact, error) {
	return s.store.ListContacts(ctx, q)
}

// Get returns a contact with its tags loaded.
func (s *ContactService) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	c, err := s.store.GetContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("contact %s not found", contactID)
		}
		return nil, err
	}
	tags, err := s.store.ListContactTags(ctx, contactID)
	if err != nil {
		return nil, err
	}
	c.Tags = tags
	return c, nil
}

// Validate runs form validation without persisting. Used by
// validate-probe requests.
func (s *ContactService) Validate(ctx context.Context, input ContactInput) error {
	if err := s.validator.Validate(input); err != nil {
		return err
	}
	return s.checkCompany(ctx, input.CompanyID)
}

// Create validates and persists a new contact, then links its tags.
func (s *ContactService) Create(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	contactID, err := id.New(id.PrefixContact)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Contact{
		ID:        contactID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
		CompanyID: input.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateContact(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.ValidationWithFields("validation failed",
				errors.FieldErrors{"email": "has already been taken"})
		}
		return nil, err
	}

	if err := s.syncTags(ctx, contactID, nil, input.TagIDs); err != nil {
		return nil, err
	}

	s.logger.Info("contact created", slog.String("contact_id", contactID))
	return s.Get(ctx, contactID)
}

// Update validates and persists changes to an existing contact and
// replaces its tag set.
func (s *ContactService) Update(ctx context.Context, contactID string, input ContactInput) (*domain.Contact, error) {
	existing, err := s.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := s.checkCompany(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	existing.FirstName = input.FirstName
	existing.LastName = input.LastName
	existing.Email = input.Email
	existing.Phone = input.Phone
	existing.Notes = input.Notes
	existing.CompanyID = input.CompanyID
	existing.Touch()

	if err := s.store.UpdateContact(ctx, existing); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.ValidationWithFields("validation failed",
				errors.FieldErrors{"email": "has already been taken"})
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("contact %s not found", contactID)
		}
		return nil, err
	}

	current := make([]string, 0, len(existing.Tags))
	for _, t := range existing.Tags {
		current = append(current, t.ID)
	}
	if err := s.syncTags(ctx, contactID, current, input.TagIDs); err != nil {
		return nil, err
	}

	return s.Get(ctx, contactID)
}

// Delete removes a contact; activities and tag links cascade.
func (s *ContactService) Delete(ctx context.Context, contactID string) error {
	if err := s.store.DeleteContact(ctx, contactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("contact %s not found", contactID)
		}
		return err
	}
	s.logger.Info("contact deleted", slog.String("contact_id", contactID))
	return nil
}

// ToggleStar flips the star flag and returns the updated contact.
func (s *ContactService) ToggleStar(ctx context.Context, contactID string) (*domain.Contact, error) {
	c, err := s.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.SetContactStarred(ctx, contactID, !c.Starred)
	if err != nil {
		return nil, err
	}
	updated.Tags = c.Tags
	return updated, nil
}

// ToggleArchive archives an active contact or restores an archived one.
func (s *ContactService) ToggleArchive(ctx context.Context, contactID string) (*domain.Contact, error) {
	c, err := s.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.SetContactArchived(ctx, contactID, !c.Archived())
	if err != nil {
		return nil, err
	}
	updated.Tags = c.Tags
	return updated, nil
}

// checkCompany rejects a company reference that resolves to nothing.
func (s *ContactService) checkCompany(ctx context.Context, companyID string) error {
	if companyID == "" {
		return nil
	}
	if _, err := s.store.GetCompany(ctx, companyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.MissingReference("company_id", "is unknown")
		}
		return err
	}
	return nil
}

// syncTags reconciles the stored tag links with the submitted set.
func (s *ContactService) syncTags(ctx context.Context, contactID string, current, desired []string) error {
	want := make(map[string]bool, len(desired))
	for _, tagID := range desired {
		want[tagID] = true
	}
	have := make(map[string]bool, len(current))
	for _, tagID := range current {
		have[tagID] = true
	}

	for tagID := range want {
		if !have[tagID] {
			if err := s.store.AddContactTag(ctx, contactID, tagID); err != nil {
				return err
			}
		}
	}
	for tagID := range have {
		if !want[tagID] {
			if err := s.store.RemoveContactTag(ctx, contactID, tagID); err != nil {
				return err
			}
		}
	}
	return nil
}
