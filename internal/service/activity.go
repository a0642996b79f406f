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

// ActivityInput carries the submitted fields of an activity form.
// ContactID is checked separately so a missing parent reference comes
// back as a field error on contact_id, not a 404.
type ActivityInput struct {
	ContactID string              `json:"contact_id"`
	Kind      domain.ActivityKind `json:"kind" validate:"required,oneof=note call email"`
	Body      string              `json:"body" validate:"required"`
}

// ActivityService implements activity use cases.
type ActivityService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewActivityService creates an activity service.
func NewActivityService(s store.Store, v *validation.Validator, logger *slog.Logger) *ActivityService {
	return &ActivityService{store: s, validator: v, logger: logger}
}

// ListForContact returns one contact's activities, newest first.
func (s *ActivityService) ListForContact(ctx context.Context, contactID string, kind domain.ActivityKind) ([]*domain.Activity, error) {
	return s.store.ListContactActivities(ctx, contactID, kind)
}

// Feed returns the global activity feed grouped by calendar day.
func (s *ActivityService) Feed(ctx context.Context, q store.ActivityQuery) ([]store.DayGroup, error) {
	activities, err := s.store.ListActivities(ctx, q)
	if err != nil {
		return nil, err
	}
	return store.GroupActivitiesByDay(activities), nil
}

// Get returns an activity by ID.
func (s *ActivityService) Get(ctx context.Context, activityID string) (*domain.Activity, error) {
	a, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("activity %s not found", activityID)
		}
		return nil, err
	}
	return a, nil
}

// Validate runs form validation without persisting.
func (s *ActivityService) Validate(ctx context.Context, input ActivityInput) error {
	if err := s.validator.Validate(input); err != nil {
		return err
	}
	return s.checkContact(ctx, input.ContactID)
}

// Create validates and persists a new activity. The contact reference
// must resolve; a blank or unknown contact is a contact_id field error.
func (s *ActivityService) Create(ctx context.Context, input ActivityInput) (*domain.Activity, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, input.ContactID); err != nil {
		return nil, err
	}

	activityID, err := id.New(id.PrefixActivity)
	if err != nil {
		return nil, err
	}

	a := &domain.Activity{
		ID:        activityID,
		ContactID: input.ContactID,
		Kind:      input.Kind,
		Body:      input.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateActivity(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("activity created",
		slog.String("activity_id", activityID),
		slog.String("contact_id", input.ContactID),
		slog.String("kind", string(input.Kind)))
	return s.Get(ctx, activityID)
}

// Update changes an activity's kind and body. The owning contact never
// changes after creation.
func (s *ActivityService) Update(ctx context.Context, activityID string, kind domain.ActivityKind, body string) (*domain.Activity, error) {
	a, err := s.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}

	input := ActivityInput{ContactID: a.ContactID, Kind: kind, Body: body}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	if err := s.store.UpdateActivity(ctx, activityID, kind, body); err != nil {
		return nil, err
	}
	return s.Get(ctx, activityID)
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, activityID string) error {
	if err := s.store.DeleteActivity(ctx, activityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("activity %s not found", activityID)
		}
		return err
	}
	return nil
}

// checkContact rejects a blank or unresolvable contact reference.
func (s *ActivityService) checkContact(ctx context.Context, contactID string) error {
	if contactID == "" {
		return errors.MissingReference("contact_id", "can't be blank")
	}
	if _, err := s.store.GetContact(ctx, contactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.MissingReference("contact_id", "is unknown")
		}
		return err
	}
	return nil
}
