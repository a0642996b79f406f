package domain

import "time"

// Company represents an organization that contacts can belong to.
// Deleting a company never deletes its contacts; their reference is
// cleared instead.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ContactCount is denormalized onto index listings.
	ContactCount int `json:"contact_count,omitempty"`
}

// Touch updates the UpdatedAt timestamp.
func (c *Company) Touch() {
	c.UpdatedAt = time.Now()
}
