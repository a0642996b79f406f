package domain

import "time"

// Tag is a label contacts can carry. Tags are global, not per-user.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Color     string    `json:"color" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactTag represents the many-to-many relationship between contacts
// and tags. The pair is unique; re-tagging is idempotent.
type ContactTag struct {
	ContactID string    `json:"contact_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
