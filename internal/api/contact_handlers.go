package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/errors"
	"github.com/rolodexapp/rolodex-server/internal/protocol"
	"github.com/rolodexapp/rolodex-server/internal/service"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// Fragment selectors the handlers care about.
const (
	targetContactsList    = "#contacts-list"
	targetCompanyFields   = "#company-fields"
	targetActivitiesPanel = "#activities-panel"
)

type contactsIndexData struct {
	Flash    string
	Contacts []*domain.Contact
	Query    store.ContactQuery
}

type contactShowData struct {
	Flash      string
	Sidebar    []*domain.Contact
	Contact    *domain.Contact
	Activities []*domain.Activity
	Kind       domain.ActivityKind
}

type contactFormData struct {
	Flash          string
	Action         string
	Contact        *domain.Contact
	Companies      []*domain.Company
	Tags           []*domain.Tag
	SelectedTagIDs map[string]bool
	Errors         errors.FieldErrors
}

func contactQueryFromRequest(r *http.Request) store.ContactQuery {
	return store.ContactQuery{
		Filter: domain.ParseContactFilter(r.URL.Query().Get("filter")),
		Search: r.URL.Query().Get("q"),
		Sort:   domain.ParseContactSort(r.URL.Query().Get("sort")),
	}
}

// contactFilterParams collects the listing params worth preserving
// across redirects.
func contactFilterParams(r *http.Request) url.Values {
	params := url.Values{}
	for _, key := range []string{"filter", "q", "sort"} {
		if v := r.URL.Query().Get(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

func contactInputFromForm(r *http.Request) service.ContactInput {
	r.ParseForm()
	return service.ContactInput{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Notes:     r.PostFormValue("notes"),
		CompanyID: r.PostFormValue("company_id"),
		TagIDs:    r.PostForm["tag_ids"],
	}
}

func contactAcceptPayload(c *domain.Contact) map[string]string {
	return map[string]string{
		"id":   c.ID,
		"path": "/contacts/" + c.ID,
	}
}

func contactAction(c *domain.Contact) protocol.Action {
	return protocol.Action{
		Mutation:       true,
		ResourcePath:   "/contacts/" + c.ID,
		CollectionPath: "/contacts",
		ExpirePatterns: []string{"/contacts*"},
		AcceptPayload:  contactAcceptPayload(c),
	}
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	q := contactQueryFromRequest(r)
	contacts, err := s.contacts.List(r.Context(), q)
	if err != nil {
		s.respondError(w, err)
		return
	}

	data := contactsIndexData{
		Flash:    takeFlash(w, r),
		Contacts: contacts,
		Query:    q,
	}
	if data.Flash != "" {
		s.renderView(w, http.StatusOK, "contacts/index", data)
		return
	}
	s.renderCached(w, r, "contacts/index", data)
}

func (s *Server) handleShowContact(w http.ResponseWriter, r *http.Request) {
	s.renderContactDetail(w, r, chi.URLParam(r, "id"))
}

// renderContactDetail renders a contact's detail page with its
// activity panel. The sidebar listing comes from the loadSidebar
// decorator, which skips the query for overlays and for fragment
// requests that only want the detail.
func (s *Server) renderContactDetail(w http.ResponseWriter, r *http.Request, contactID string) {
	contact, err := s.contacts.Get(r.Context(), contactID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	kind := domain.ActivityKind(r.URL.Query().Get("kind"))
	if !domain.ValidActivityKind(kind) {
		kind = ""
	}
	activities, err := s.activities.ListForContact(r.Context(), contactID, kind)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.renderView(w, http.StatusOK, "contacts/show", contactShowData{
		Flash:      takeFlash(w, r),
		Sidebar:    sidebarContacts(r.Context()),
		Contact:    contact,
		Activities: activities,
		Kind:       kind,
	})
}

func (s *Server) handleNewContact(w http.ResponseWriter, r *http.Request) {
	s.renderContactForm(w, r, http.StatusOK, &domain.Contact{}, nil, "/contacts", errors.FieldErrors{})
}

func (s *Server) handleEditContact(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "id")
	contact, err := s.contacts.Get(r.Context(), contactID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	selected := make([]string, 0, len(contact.Tags))
	for _, t := range contact.Tags {
		selected = append(selected, t.ID)
	}
	s.renderContactForm(w, r, http.StatusOK, contact, selected, "/contacts/"+contactID, errors.FieldErrors{})
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	input := contactInputFromForm(r)

	// A validate probe, or a reactive re-render after the company
	// select changed, runs validation only and never persists.
	if pctx.ValidateProbe() || (pctx.Library && pctx.HasTarget(targetCompanyFields)) {
		s.probeContactForm(w, r, pctx, input, "/contacts")
		return
	}

	contact, err := s.contacts.Create(r.Context(), input)
	if err != nil {
		if isFormError(err) {
			s.renderContactFormInput(w, r, http.StatusUnprocessableEntity, input, "/contacts", fieldErrors(err))
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), contactAction(contact))
	s.finishMutation(w, r, shape, contact.FullName()+" was added.")
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	contactID := chi.URLParam(r, "id")
	input := contactInputFromForm(r)

	if pctx.ValidateProbe() || (pctx.Library && pctx.HasTarget(targetCompanyFields)) {
		s.probeContactForm(w, r, pctx, input, "/contacts/"+contactID)
		return
	}

	contact, err := s.contacts.Update(r.Context(), contactID, input)
	if err != nil {
		if isFormError(err) {
			s.renderContactFormInput(w, r, http.StatusUnprocessableEntity, input, "/contacts/"+contactID, fieldErrors(err))
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), contactAction(contact))
	s.finishMutation(w, r, shape, contact.FullName()+" was updated.")
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	contactID := chi.URLParam(r, "id")

	if err := s.contacts.Delete(r.Context(), contactID); err != nil {
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), protocol.Action{
		Mutation:       true,
		Destroy:        true,
		CollectionPath: "/contacts",
		Filters:        contactFilterParams(r),
		ExpirePatterns: []string{"/contacts*"},
	})
	s.finishMutation(w, r, shape, "Contact was deleted.")
}

func (s *Server) handleStarContact(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	contactID := chi.URLParam(r, "id")

	contact, err := s.contacts.ToggleStar(r.Context(), contactID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.expire(w, []string{"/contacts*"})

	// Library requests swap the detail fragment in place; no redirect
	// round trip, no sidebar refresh.
	if pctx.Library {
		activities, err := s.activities.ListForContact(r.Context(), contactID, "")
		if err != nil {
			s.respondError(w, err)
			return
		}
		s.renderView(w, http.StatusOK, "contacts/show", contactShowData{
			Contact:    contact,
			Activities: activities,
		})
		return
	}

	http.Redirect(w, r, "/contacts/"+contactID, http.StatusSeeOther)
}

func (s *Server) handleArchiveContact(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	contactID := chi.URLParam(r, "id")

	contact, err := s.contacts.ToggleArchive(r.Context(), contactID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	flash := contact.FullName() + " was archived."
	if !contact.Archived() {
		flash = contact.FullName() + " was unarchived."
	}
	shape := protocol.Plan(pctx, protocol.Success(), contactAction(contact))
	s.finishMutation(w, r, shape, flash)
}

// probeContactForm re-renders the form without persisting. Only an
// explicit validate probe computes field errors; the reactive
// company-fields re-render comes back clean so picking a company on a
// half-filled form never flags the untouched fields.
func (s *Server) probeContactForm(w http.ResponseWriter, r *http.Request, pctx protocol.Context, input service.ContactInput, action string) {
	if !pctx.ValidateProbe() {
		s.renderContactFormInput(w, r, http.StatusUnprocessableEntity, input, action, errors.FieldErrors{})
		return
	}
	err := s.contacts.Validate(r.Context(), input)
	if err != nil && !isFormError(err) {
		s.respondError(w, err)
		return
	}
	shape := protocol.Plan(pctx, formOutcome(err), protocol.Action{})
	s.renderContactFormInput(w, r, shape.Status, input, action, shape.Errors)
}

// renderContactFormInput re-renders the form from submitted input.
func (s *Server) renderContactFormInput(w http.ResponseWriter, r *http.Request, status int, input service.ContactInput, action string, errs errors.FieldErrors) {
	contact := &domain.Contact{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Notes:     input.Notes,
		CompanyID: input.CompanyID,
	}
	s.renderContactForm(w, r, status, contact, input.TagIDs, action, errs)
}

func (s *Server) renderContactForm(w http.ResponseWriter, r *http.Request, status int, contact *domain.Contact, selectedTagIDs []string, action string, errs errors.FieldErrors) {
	companies, err := s.companies.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	tags, err := s.tags.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	selected := make(map[string]bool, len(selectedTagIDs))
	for _, tagID := range selectedTagIDs {
		selected[tagID] = true
	}
	if errs == nil {
		errs = errors.FieldErrors{}
	}

	s.renderView(w, status, "contacts/form", contactFormData{
		Action:         action,
		Contact:        contact,
		Companies:      companies,
		Tags:           tags,
		SelectedTagIDs: selected,
		Errors:         errs,
	})
}
