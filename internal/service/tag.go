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

// TagInput carries the fields of a new tag.
type TagInput struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// TagService implements tag use cases. Tags are assigned to contacts
// through the contact form; this service manages the tag set itself.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(s store.Store, v *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{store: s, validator: v, logger: logger}
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// Create validates and persists a new tag.
func (s *TagService) Create(ctx context.Context, input TagInput) (*domain.Tag, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	tagID, err := id.New(id.PrefixTag)
	if err != nil {
		return nil, err
	}
	t := &domain.Tag{
		ID:        tagID,
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateTag(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.ValidationWithFields("validation failed",
				errors.FieldErrors{"name": "has already been taken"})
		}
		return nil, err
	}
	return t, nil
}

// EnsureDefaultTags seeds the standard tag set on first run so contact
// forms have something to offer. Existing tags are left alone.
func (s *TagService) EnsureDefaultTags(ctx context.Context) error {
	existing, err := s.store.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []TagInput{
		{Name: "Client", Color: "#2563eb"},
		{Name: "Lead", Color: "#d97706"},
		{Name: "Vendor", Color: "#059669"},
		{Name: "Friend", Color: "#db2777"},
	}
	for _, input := range defaults {
		if _, err := s.Create(ctx, input); err != nil {
			return err
		}
	}
	s.logger.Info("seeded default tags", slog.Int("count", len(defaults)))
	return nil
}
