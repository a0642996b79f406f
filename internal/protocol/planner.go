package protocol

import (
	"net/http"
	"net/url"

	"github.com/rolodexapp/rolodex-server/internal/errors"
)

// OutcomeKind is how an action against the entity model ended.
type OutcomeKind int

const (
	// OutcomeSuccess means the action completed (or, for reads, the
	// entity was found).
	OutcomeSuccess OutcomeKind = iota
	// OutcomeInvalid means validation rejected the input.
	OutcomeInvalid
	// OutcomeNotFound means the addressed entity does not exist.
	OutcomeNotFound
)

// Outcome is the result of an action, carrying field errors when
// validation failed.
type Outcome struct {
	Kind   OutcomeKind
	Errors errors.FieldErrors
}

// Success is a successful outcome.
func Success() Outcome { return Outcome{Kind: OutcomeSuccess} }

// Invalid is a validation-failure outcome with field messages.
func Invalid(fields errors.FieldErrors) Outcome {
	return Outcome{Kind: OutcomeInvalid, Errors: fields}
}

// NotFound is a missing-entity outcome.
func NotFound() Outcome { return Outcome{Kind: OutcomeNotFound} }

// Action describes the request being planned: what it did and where
// its resource lives, so the planner can pick redirect targets and
// cache patterns without knowing the entity types.
type Action struct {
	// Mutation is true for create/update/destroy/toggle actions whose
	// success must expire cached fragments.
	Mutation bool
	// Destroy is true for delete actions.
	Destroy bool

	// ResourcePath is the entity's canonical location, e.g.
	// "/contacts/con-abc". Redirect target for non-overlay saves.
	ResourcePath string
	// CollectionPath is the global listing, e.g. "/activities".
	CollectionPath string

	// ScopedTarget is the sub-panel selector (e.g. "#activities-panel")
	// that, when targeted by a destroy, redirects to ScopedPath
	// instead of CollectionPath.
	ScopedTarget string
	// ScopedPath is the parent-scoped listing, e.g.
	// "/contacts/con-abc/activities".
	ScopedPath string

	// Filters are the listing params (q, kind, filter, sort) preserved
	// across redirects.
	Filters url.Values

	// ExpirePatterns are the cache globs a successful mutation
	// invalidates, e.g. "/contacts*".
	ExpirePatterns []string

	// AcceptPayload is handed to the parent layer when a save inside
	// an overlay accepts it.
	AcceptPayload any
}

// ShapeKind is the kind of response the planner chose.
type ShapeKind int

const (
	// ShapeRender is a plain 200 render of the page or fragment.
	ShapeRender ShapeKind = iota
	// ShapeForm re-renders the originating form, usually with errors.
	ShapeForm
	// ShapeAccept closes the overlay, handing a payload to the parent
	// layer, with no body.
	ShapeAccept
	// ShapeRedirect sends the client to Location.
	ShapeRedirect
	// ShapeNotFound is a 404 with no fragment rendered.
	ShapeNotFound
)

// Shape is the planned response.
type Shape struct {
	Kind     ShapeKind
	Status   int
	Location string
	// Errors are the field messages a ShapeForm renders inline.
	Errors errors.FieldErrors
	// Payload accompanies a ShapeAccept.
	Payload any
	// Expire lists the cache globs to invalidate, both server-side and
	// via the expire-cache response header.
	Expire []string
}

// Plan decides the response shape for an action's outcome under the
// given request context. Rules, in priority order:
//
//  1. A validate probe always re-renders the form with the current
//     errors (422 if any, else 200) and never touches the cache.
//  2. A validation failure re-renders the originating form with 422.
//  3. A successful save inside an overlay accepts the overlay with a
//     payload and no content.
//  4. A successful save outside an overlay redirects to the resource.
//  5. A successful destroy expires caches, then: overlay → accept;
//     scoped sub-panel target → parent-scoped redirect; otherwise a
//     redirect to the global listing. Filters survive the redirect.
//  6. A missing entity is a 404.
//
// Anything else is a plain render.
func Plan(ctx Context, outcome Outcome, action Action) Shape {
	if ctx.ValidateProbe() {
		status := http.StatusOK
		if len(outcome.Errors) > 0 {
			status = http.StatusUnprocessableEntity
		}
		return Shape{Kind: ShapeForm, Status: status, Errors: outcome.Errors}
	}

	switch outcome.Kind {
	case OutcomeInvalid:
		return Shape{
			Kind:   ShapeForm,
			Status: http.StatusUnprocessableEntity,
			Errors: outcome.Errors,
		}

	case OutcomeNotFound:
		return Shape{Kind: ShapeNotFound, Status: http.StatusNotFound}
	}

	if !action.Mutation {
		return Shape{Kind: ShapeRender, Status: http.StatusOK}
	}

	if action.Destroy {
		return planDestroy(ctx, action)
	}

	if ctx.Overlay() {
		return Shape{
			Kind:    ShapeAccept,
			Status:  http.StatusNoContent,
			Payload: action.AcceptPayload,
			Expire:  action.ExpirePatterns,
		}
	}

	return Shape{
		Kind:     ShapeRedirect,
		Status:   http.StatusSeeOther,
		Location: withFilters(action.ResourcePath, nil),
		Expire:   action.ExpirePatterns,
	}
}

func planDestroy(ctx Context, action Action) Shape {
	if ctx.Overlay() {
		return Shape{
			Kind:    ShapeAccept,
			Status:  http.StatusNoContent,
			Payload: action.AcceptPayload,
			Expire:  action.ExpirePatterns,
		}
	}

	location := withFilters(action.CollectionPath, action.Filters)
	// A library request aimed at the scoped sub-panel stays in the
	// parent's context; a full-page delete falls through to the global
	// listing even though full-page loads target everything.
	if ctx.Library && action.ScopedTarget != "" && ctx.HasTarget(action.ScopedTarget) {
		location = withFilters(action.ScopedPath, action.Filters)
	}

	return Shape{
		Kind:     ShapeRedirect,
		Status:   http.StatusSeeOther,
		Location: location,
		Expire:   action.ExpirePatterns,
	}
}

// withFilters appends preserved listing params to a redirect location.
func withFilters(path string, filters url.Values) string {
	if len(filters) == 0 {
		return path
	}
	return path + "?" + filters.Encode()
}
