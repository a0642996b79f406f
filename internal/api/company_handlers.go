package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/errors"
	"github.com/rolodexapp/rolodex-server/internal/protocol"
	"github.com/rolodexapp/rolodex-server/internal/service"
)

type companiesIndexData struct {
	Flash     string
	Companies []*domain.Company
}

type companyShowData struct {
	Flash    string
	Company  *domain.Company
	Contacts []*domain.Contact
}

type companyFormData struct {
	Action  string
	Company *domain.Company
	Errors  errors.FieldErrors
}

func companyInputFromForm(r *http.Request) service.CompanyInput {
	r.ParseForm()
	return service.CompanyInput{
		Name:    r.PostFormValue("name"),
		Website: r.PostFormValue("website"),
	}
}

// companyAction builds the planner action for a saved company. Company
// names are denormalized into contact listings, so those expire too.
func companyAction(c *domain.Company) protocol.Action {
	return protocol.Action{
		Mutation:       true,
		ResourcePath:   "/companies/" + c.ID,
		CollectionPath: "/companies",
		ExpirePatterns: []string{"/companies*", "/contacts*"},
		AcceptPayload: map[string]string{
			"id":   c.ID,
			"name": c.Name,
		},
	}
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	data := companiesIndexData{
		Flash:     takeFlash(w, r),
		Companies: companies,
	}
	if data.Flash != "" {
		s.renderView(w, http.StatusOK, "companies/index", data)
		return
	}
	s.renderCached(w, r, "companies/index", data)
}

// handleShowCompany renders a company with its active contacts. The
// contacts sidebar is never loaded on company pages.
func (s *Server) handleShowCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	company, err := s.companies.Get(r.Context(), companyID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	contacts, err := s.companies.Contacts(r.Context(), companyID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.renderView(w, http.StatusOK, "companies/show", companyShowData{
		Flash:    takeFlash(w, r),
		Company:  company,
		Contacts: contacts,
	})
}

func (s *Server) handleNewCompany(w http.ResponseWriter, r *http.Request) {
	s.renderView(w, http.StatusOK, "companies/form", companyFormData{
		Action:  "/companies",
		Company: &domain.Company{},
		Errors:  errors.FieldErrors{},
	})
}

func (s *Server) handleEditCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	company, err := s.companies.Get(r.Context(), companyID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.renderView(w, http.StatusOK, "companies/form", companyFormData{
		Action:  "/companies/" + companyID,
		Company: company,
		Errors:  errors.FieldErrors{},
	})
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	input := companyInputFromForm(r)

	if pctx.ValidateProbe() {
		err := s.companies.Validate(input)
		if err != nil && !isFormError(err) {
			s.respondError(w, err)
			return
		}
		shape := protocol.Plan(pctx, formOutcome(err), protocol.Action{})
		s.renderCompanyFormInput(w, shape.Status, input, "/companies", shape.Errors)
		return
	}

	company, err := s.companies.Create(r.Context(), input)
	if err != nil {
		if isFormError(err) {
			s.renderCompanyFormInput(w, http.StatusUnprocessableEntity, input, "/companies", fieldErrors(err))
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), companyAction(company))
	s.finishMutation(w, r, shape, company.Name+" was created.")
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	companyID := chi.URLParam(r, "id")
	input := companyInputFromForm(r)
	formAction := "/companies/" + companyID

	if pctx.ValidateProbe() {
		err := s.companies.Validate(input)
		if err != nil && !isFormError(err) {
			s.respondError(w, err)
			return
		}
		shape := protocol.Plan(pctx, formOutcome(err), protocol.Action{})
		s.renderCompanyFormInput(w, shape.Status, input, formAction, shape.Errors)
		return
	}

	company, err := s.companies.Update(r.Context(), companyID, input)
	if err != nil {
		if isFormError(err) {
			s.renderCompanyFormInput(w, http.StatusUnprocessableEntity, input, formAction, fieldErrors(err))
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), companyAction(company))
	s.finishMutation(w, r, shape, company.Name+" was updated.")
}

func (s *Server) renderCompanyFormInput(w http.ResponseWriter, status int, input service.CompanyInput, action string, errs errors.FieldErrors) {
	if errs == nil {
		errs = errors.FieldErrors{}
	}
	s.renderView(w, status, "companies/form", companyFormData{
		Action:  action,
		Company: &domain.Company{Name: input.Name, Website: input.Website},
		Errors:  errs,
	})
}
