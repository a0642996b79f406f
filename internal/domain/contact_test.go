package domain

import (
	"testing"
	"time"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		c := Contact{FirstName: tt.first, LastName: tt.last}
		if got := c.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestArchived(t *testing.T) {
	c := Contact{}
	if c.Archived() {
		t.Error("zero contact should not be archived")
	}
	now := time.Now()
	c.ArchivedAt = &now
	if !c.Archived() {
		t.Error("contact with ArchivedAt should be archived")
	}
}

func TestParseContactFilter(t *testing.T) {
	tests := []struct {
		in   string
		want ContactFilter
	}{
		{"", FilterActive},
		{"active", FilterActive},
		{"starred", FilterStarred},
		{"archived", FilterArchived},
		{"bogus", FilterActive},
	}
	for _, tt := range tests {
		if got := ParseContactFilter(tt.in); got != tt.want {
			t.Errorf("ParseContactFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseContactSort(t *testing.T) {
	tests := []struct {
		in   string
		want ContactSort
	}{
		{"", SortLastName},
		{"last_name", SortLastName},
		{"first_name", SortFirstName},
		{"created_at", SortNewest},
		{"company", SortCompany},
		{"bogus", SortLastName},
	}
	for _, tt := range tests {
		if got := ParseContactSort(tt.in); got != tt.want {
			t.Errorf("ParseContactSort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
