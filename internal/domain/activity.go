package domain

import "time"

// ActivityKind is the type of interaction logged against a contact.
type ActivityKind string

const (
	ActivityNote  ActivityKind = "note"
	ActivityCall  ActivityKind = "call"
	ActivityEmail ActivityKind = "email"
)

// ValidActivityKind reports whether k is one of the known kinds.
func ValidActivityKind(k ActivityKind) bool {
	switch k {
	case ActivityNote, ActivityCall, ActivityEmail:
		return true
	}
	return false
}

// Activity is an interaction record. CreatedAt is fixed at creation
// and drives both per-contact ordering and the feed's day grouping.
type Activity struct {
	ID        string       `json:"id"`
	ContactID string       `json:"contact_id" validate:"required"`
	Kind      ActivityKind `json:"kind" validate:"required,oneof=note call email"`
	Body      string       `json:"body" validate:"required"`
	CreatedAt time.Time    `json:"created_at"`

	// Denormalized contact name for feed rendering without a second query.
	ContactFirstName string `json:"contact_first_name,omitempty"`
	ContactLastName  string `json:"contact_last_name,omitempty"`
}
