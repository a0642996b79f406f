package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/protocol"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

// demoDelay slows mutating requests down by a fixed amount so fragment
// swaps and loading states are visible during demos. Reads pass
// through untouched.
func demoDelay(delay time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
				time.Sleep(delay)
			}
			next.ServeHTTP(w, r)
		})
	}
}

type sidebarKey struct{}

// loadSidebar is a route decorator that loads the active contacts
// listing for pages rendering the two-panel layout. Overlay requests
// skip the query, as do fragment requests that leave #contacts-list
// alone. Routes that manage their own contact listing omit the
// decorator entirely.
func (s *Server) loadSidebar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pctx := protocol.Classify(r)
		if !pctx.Overlay() && pctx.HasTarget(targetContactsList) {
			contacts, err := s.contacts.List(r.Context(), store.ContactQuery{})
			if err != nil {
				s.respondError(w, err)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), sidebarKey{}, contacts))
		}
		next.ServeHTTP(w, r)
	})
}

// sidebarContacts returns the listing stashed by loadSidebar, or nil
// when the decorator skipped the query or was not applied.
func sidebarContacts(ctx context.Context) []*domain.Contact {
	contacts, _ := ctx.Value(sidebarKey{}).([]*domain.Contact)
	return contacts
}

const flashCookie = "rolodex_flash"

// setFlash stores a one-shot notice shown on the next full render.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// takeFlash reads and clears the pending notice, if any.
func takeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
