// Package protocol implements the server side of the fragment
// navigation wire protocol: classifying inbound requests from their
// protocol headers and planning the shape of the response.
//
// A compliant client announces itself with a version header and tells
// the server which fragment it intends to swap, which layer it renders
// into, and whether it is only probing validation. Requests without
// the version header are ordinary full-page loads and degrade to a
// full render.
package protocol

import (
	"net/http"
	"strings"
)

// Request header names.
const (
	HeaderVersion  = "X-Up-Version"
	HeaderTarget   = "X-Up-Target"
	HeaderMode     = "X-Up-Mode"
	HeaderValidate = "X-Up-Validate"
)

// Response header names.
const (
	HeaderAcceptLayer = "X-Up-Accept-Layer"
	HeaderExpireCache = "X-Up-Expire-Cache"
)

// Mode is the layer a request renders into.
type Mode string

const (
	ModeRoot Mode = "root"

	// Overlay modes. Any mode other than root behaves as an overlay.
	ModeModal  Mode = "modal"
	ModeDrawer Mode = "drawer"
	ModePopup  Mode = "popup"
	ModeCover  Mode = "cover"
)

// Context is the classified view of one request's protocol headers.
// It is built once per request; handlers and the planner branch only
// on this struct, never on raw headers.
type Context struct {
	// Library is true when the request was issued by the navigation
	// library (version header present).
	Library bool
	// Target is the fragment selector the client will swap, e.g.
	// "#contacts-list". Empty for full-page loads.
	Target string
	// Mode is the layer mode. Defaults to root.
	Mode Mode
	// ValidateField names the field(s) being probed when the request
	// is a validate-only probe. Empty otherwise.
	ValidateField string
}

// Classify builds a Context from a request's headers. Malformed or
// absent headers degrade to an ordinary full-page request.
func Classify(r *http.Request) Context {
	ctx := Context{Mode: ModeRoot}
	if r.Header.Get(HeaderVersion) == "" {
		return ctx
	}

	ctx.Library = true
	ctx.Target = strings.TrimSpace(r.Header.Get(HeaderTarget))
	ctx.ValidateField = strings.TrimSpace(r.Header.Get(HeaderValidate))

	if mode := strings.TrimSpace(r.Header.Get(HeaderMode)); mode != "" {
		ctx.Mode = Mode(mode)
	}
	return ctx
}

// Overlay reports whether the request renders into an overlay layer.
func (c Context) Overlay() bool {
	return c.Library && c.Mode != ModeRoot && c.Mode != ""
}

// ValidateProbe reports whether the request asks for validation only.
// A probe never persists anything.
func (c Context) ValidateProbe() bool {
	return c.Library && c.ValidateField != ""
}

// HasTarget reports whether the request targets the given fragment
// selector. Full-page loads implicitly target everything, so this is
// always true for non-library requests. For library requests the
// target header may carry a comma-separated selector list.
func (c Context) HasTarget(selector string) bool {
	if !c.Library {
		return true
	}
	for _, t := range strings.Split(c.Target, ",") {
		if strings.TrimSpace(t) == selector {
			return true
		}
	}
	return false
}
