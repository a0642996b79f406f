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

type activitiesIndexData struct {
	Flash   string
	Sidebar []*domain.Contact
	Groups  []store.DayGroup
	Query   store.ActivityQuery
}

type activityFormData struct {
	Action   string
	Activity *domain.Activity
	Errors   errors.FieldErrors
}

type activityPickerData struct {
	Contacts []*domain.Contact
	Activity *domain.Activity
	Errors   errors.FieldErrors
}

type activityShowData struct {
	Flash    string
	Activity *domain.Activity
}

func activityQueryFromRequest(r *http.Request) store.ActivityQuery {
	kind := domain.ActivityKind(r.URL.Query().Get("kind"))
	if !domain.ValidActivityKind(kind) {
		kind = ""
	}
	return store.ActivityQuery{
		Kind:   kind,
		Search: r.URL.Query().Get("q"),
	}
}

// activityFilterParams collects the feed params preserved across
// redirects.
func activityFilterParams(r *http.Request) url.Values {
	params := url.Values{}
	for _, key := range []string{"q", "kind"} {
		if v := r.URL.Query().Get(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

func activityInputFromForm(r *http.Request, contactID string) service.ActivityInput {
	r.ParseForm()
	if contactID == "" {
		contactID = r.PostFormValue("contact_id")
	}
	return service.ActivityInput{
		ContactID: contactID,
		Kind:      domain.ActivityKind(r.PostFormValue("kind")),
		Body:      r.PostFormValue("body"),
	}
}

// activityAction builds the planner action for a saved activity.
func activityAction(a *domain.Activity) protocol.Action {
	return protocol.Action{
		Mutation:       true,
		ResourcePath:   "/activities/" + a.ID,
		CollectionPath: "/activities",
		ScopedTarget:   targetActivitiesPanel,
		ScopedPath:     "/contacts/" + a.ContactID + "/activities",
		ExpirePatterns: activityExpirePatterns(a.ContactID),
		AcceptPayload: map[string]string{
			"id":         a.ID,
			"contact_id": a.ContactID,
		},
	}
}

// activityExpirePatterns covers both the global feed and the owning
// contact's scoped panel.
func activityExpirePatterns(contactID string) []string {
	return []string{"/activities*", "/contacts/" + contactID + "*"}
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	q := activityQueryFromRequest(r)
	groups, err := s.activities.Feed(r.Context(), q)
	if err != nil {
		s.respondError(w, err)
		return
	}

	data := activitiesIndexData{
		Flash:   takeFlash(w, r),
		Sidebar: sidebarContacts(r.Context()),
		Groups:  groups,
		Query:   q,
	}
	// Only full-layout renders are cacheable. Fragment and overlay
	// variants render fresh so a sidebar-less body never serves a
	// later full-page load.
	if data.Flash != "" || data.Sidebar == nil {
		s.renderView(w, http.StatusOK, "activities/index", data)
		return
	}
	s.renderCached(w, r, "activities/index", data)
}

// handleNewActivity renders the overlay picker form that can log an
// activity against any active contact.
func (s *Server) handleNewActivity(w http.ResponseWriter, r *http.Request) {
	s.renderActivityPicker(w, r, http.StatusOK, &domain.Activity{Kind: domain.ActivityNote}, errors.FieldErrors{})
}

// handleCreateActivity creates an activity from the global picker.
// A blank or unknown contact comes back as a contact_id field error on
// the picker, never a 404.
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	input := activityInputFromForm(r, "")

	if pctx.ValidateProbe() {
		err := s.activities.Validate(r.Context(), input)
		if err != nil && !isFormError(err) {
			s.respondError(w, err)
			return
		}
		shape := protocol.Plan(pctx, formOutcome(err), protocol.Action{})
		s.renderActivityPicker(w, r, shape.Status, activityFromInput(input), shape.Errors)
		return
	}

	activity, err := s.activities.Create(r.Context(), input)
	if err != nil {
		if isFormError(err) {
			s.renderActivityPicker(w, r, http.StatusUnprocessableEntity, activityFromInput(input), fieldErrors(err))
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), activityAction(activity))
	s.finishMutation(w, r, shape, "Activity logged")
}

// handleListContactActivities renders a contact's detail with its
// activity panel filtered by kind. This is also the landing page for
// scoped destroy redirects.
func (s *Server) handleListContactActivities(w http.ResponseWriter, r *http.Request) {
	s.renderContactDetail(w, r, chi.URLParam(r, "id"))
}

// handleCreateContactActivity logs an activity from the panel on a
// contact's detail page.
func (s *Server) handleCreateContactActivity(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	contactID := chi.URLParam(r, "id")
	input := activityInputFromForm(r, contactID)
	formAction := "/contacts/" + contactID + "/activities"

	if pctx.ValidateProbe() {
		err := s.activities.Validate(r.Context(), input)
		if err != nil && !isFormError(err) {
			s.respondError(w, err)
			return
		}
		shape := protocol.Plan(pctx, formOutcome(err), protocol.Action{})
		s.renderView(w, shape.Status, "activities/form", activityFormData{
			Action:   formAction,
			Activity: activityFromInput(input),
			Errors:   shape.Errors,
		})
		return
	}

	activity, err := s.activities.Create(r.Context(), input)
	if err != nil {
		if isFormError(err) {
			s.renderView(w, http.StatusUnprocessableEntity, "activities/form", activityFormData{
				Action:   formAction,
				Activity: activityFromInput(input),
				Errors:   fieldErrors(err),
			})
			return
		}
		s.respondError(w, err)
		return
	}

	// Saving from the panel lands back on the contact, not the feed.
	action := activityAction(activity)
	action.ResourcePath = "/contacts/" + contactID
	shape := protocol.Plan(pctx, protocol.Success(), action)
	s.finishMutation(w, r, shape, "Activity logged")
}

func (s *Server) handleShowActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.activities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.renderView(w, http.StatusOK, "activities/show", activityShowData{
		Flash:    takeFlash(w, r),
		Activity: activity,
	})
}

func (s *Server) handleEditActivity(w http.ResponseWriter, r *http.Request) {
	activityID := chi.URLParam(r, "id")
	activity, err := s.activities.Get(r.Context(), activityID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.renderView(w, http.StatusOK, "activities/form", activityFormData{
		Action:   "/activities/" + activityID,
		Activity: activity,
		Errors:   errors.FieldErrors{},
	})
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	activityID := chi.URLParam(r, "id")
	r.ParseForm()
	kind := domain.ActivityKind(r.PostFormValue("kind"))
	body := r.PostFormValue("body")
	formAction := "/activities/" + activityID

	existing, err := s.activities.Get(r.Context(), activityID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if pctx.ValidateProbe() {
		verr := s.activities.Validate(r.Context(), service.ActivityInput{
			ContactID: existing.ContactID,
			Kind:      kind,
			Body:      body,
		})
		if verr != nil && !isFormError(verr) {
			s.respondError(w, verr)
			return
		}
		shape := protocol.Plan(pctx, formOutcome(verr), protocol.Action{})
		probe := *existing
		probe.Kind = kind
		probe.Body = body
		s.renderView(w, shape.Status, "activities/form", activityFormData{
			Action:   formAction,
			Activity: &probe,
			Errors:   shape.Errors,
		})
		return
	}

	activity, err := s.activities.Update(r.Context(), activityID, kind, body)
	if err != nil {
		if isFormError(err) {
			invalid := *existing
			invalid.Kind = kind
			invalid.Body = body
			s.renderView(w, http.StatusUnprocessableEntity, "activities/form", activityFormData{
				Action:   formAction,
				Activity: &invalid,
				Errors:   fieldErrors(err),
			})
			return
		}
		s.respondError(w, err)
		return
	}

	shape := protocol.Plan(pctx, protocol.Success(), activityAction(activity))
	s.finishMutation(w, r, shape, "Activity updated")
}

// handleDeleteActivity destroys an activity. A request targeting the
// contact's activities panel redirects back to that panel's scoped
// listing; anything else lands on the global feed. Feed filters ride
// along either way.
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	pctx := protocol.Classify(r)
	activityID := chi.URLParam(r, "id")

	activity, err := s.activities.Get(r.Context(), activityID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.activities.Delete(r.Context(), activityID); err != nil {
		s.respondError(w, err)
		return
	}

	action := activityAction(activity)
	action.Destroy = true
	action.Filters = activityFilterParams(r)
	shape := protocol.Plan(pctx, protocol.Success(), action)
	s.finishMutation(w, r, shape, "Activity deleted")
}

func activityFromInput(input service.ActivityInput) *domain.Activity {
	return &domain.Activity{
		ContactID: input.ContactID,
		Kind:      input.Kind,
		Body:      input.Body,
	}
}

func (s *Server) renderActivityPicker(w http.ResponseWriter, r *http.Request, status int, activity *domain.Activity, errs errors.FieldErrors) {
	contacts, err := s.contacts.List(r.Context(), store.ContactQuery{})
	if err != nil {
		s.respondError(w, err)
		return
	}
	if errs == nil {
		errs = errors.FieldErrors{}
	}
	s.renderView(w, status, "activities/picker", activityPickerData{
		Contacts: contacts,
		Activity: activity,
		Errors:   errs,
	})
}
