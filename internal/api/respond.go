package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rolodexapp/rolodex-server/internal/errors"
	"github.com/rolodexapp/rolodex-server/internal/protocol"
)

// finishMutation applies the cache and header side effects of a planned
// mutation shape, then writes accept/redirect/not-found responses.
// Form shapes are left to the caller, which knows which view to render.
// Returns true when the response has been written.
func (s *Server) finishMutation(w http.ResponseWriter, r *http.Request, shape protocol.Shape, flash string) bool {
	s.expire(w, shape.Expire)

	switch shape.Kind {
	case protocol.ShapeAccept:
		if shape.Payload != nil {
			payload, err := json.Marshal(shape.Payload)
			if err != nil {
				s.logger.Error("marshal accept payload", "error", err.Error())
			} else {
				w.Header().Set(protocol.HeaderAcceptLayer, string(payload))
			}
		}
		w.WriteHeader(shape.Status)
		return true

	case protocol.ShapeRedirect:
		if flash != "" {
			setFlash(w, flash)
		}
		http.Redirect(w, r, shape.Location, shape.Status)
		return true

	case protocol.ShapeNotFound:
		http.Error(w, "not found", http.StatusNotFound)
		return true
	}
	return false
}

// expire drops matching server-side fragments and tells the client to
// expire its own cache. Invalidation failures never fail the request.
func (s *Server) expire(w http.ResponseWriter, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	s.cache.ExpireAll(patterns)
	w.Header().Set(protocol.HeaderExpireCache, strings.Join(patterns, ", "))
}

// renderView executes a view, buffering so a template error becomes a
// clean 500 instead of a torn page.
func (s *Server) renderView(w http.ResponseWriter, status int, view string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, view, data); err != nil {
		s.logger.Error("render failed", "view", view, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// renderCached is renderView for cacheable listings: it serves a
// cached fragment when present and stores a fresh render otherwise.
func (s *Server) renderCached(w http.ResponseWriter, r *http.Request, view string, data any) {
	key := r.URL.RequestURI()
	if entry, ok := s.cache.Get(key); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(entry.Body)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, view, data); err != nil {
		s.logger.Error("render failed", "view", view, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.cache.Put(key, buf.Bytes())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// respondError maps a domain error onto a status. Validation errors
// never reach this path; handlers re-render their forms instead.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var derr *errors.Error
	if errors.As(err, &derr) {
		http.Error(w, derr.Message, derr.HTTPStatus())
		return
	}
	s.logger.Error("request failed", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// fieldErrors extracts the field→message map from a validation error.
func fieldErrors(err error) errors.FieldErrors {
	if err == nil {
		return errors.FieldErrors{}
	}
	var derr *errors.Error
	if errors.As(err, &derr) && derr.Fields != nil {
		return derr.Fields
	}
	return errors.FieldErrors{}
}

// isFormError reports whether err should re-render the originating
// form rather than escape as a status response.
func isFormError(err error) bool {
	return errors.Is(err, errors.ErrValidation) || errors.Is(err, errors.ErrMissingReference)
}

// formOutcome classifies a validation result for the planner.
func formOutcome(err error) protocol.Outcome {
	if err == nil {
		return protocol.Success()
	}
	return protocol.Invalid(fieldErrors(err))
}
