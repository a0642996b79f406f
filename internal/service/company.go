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

// CompanyInput carries the submitted fields of a company form.
type CompanyInput struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website" validate:"omitempty,url"`
}

// CompanyService implements company use cases.
type CompanyService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCompanyService creates a company service.
func NewCompanyService(s store.Store, v *validation.Validator, logger *slog.Logger) *CompanyService {
	return &CompanyService{store: s, validator: v, logger: logger}
}

// List returns all companies with their active contact counts.
func (s *CompanyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.store.ListCompanies(ctx)
}

// Get returns a company by ID.
func (s *CompanyService) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	c, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("company %s not found", companyID)
		}
		return nil, err
	}
	return c, nil
}

// Contacts returns a company's active contacts, first name first.
func (s *CompanyService) Contacts(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	return s.store.ListCompanyContacts(ctx, companyID)
}

// Validate runs form validation without persisting.
func (s *CompanyService) Validate(input CompanyInput) error {
	return s.validator.Validate(input)
}

// Create validates and persists a new company.
func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	companyID, err := id.New(id.PrefixCompany)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Company{
		ID:        companyID,
		Name:      input.Name,
		Website:   input.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCompany(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("company created", slog.String("company_id", companyID))
	return c, nil
}

// Update validates and persists changes to a company.
func (s *CompanyService) Update(ctx context.Context, companyID string, input CompanyInput) (*domain.Company, error) {
	c, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	c.Name = input.Name
	c.Website = input.Website
	c.Touch()

	if err := s.store.UpdateCompany(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
