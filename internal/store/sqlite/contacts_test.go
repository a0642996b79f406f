package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/id"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

func TestContactCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateContact(t, s, "Ada", "Lovelace", "ada@example.com")

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" || got.Email != "ada@example.com" {
		t.Errorf("unexpected contact: %+v", got)
	}
	if got.Archived() {
		t.Error("new contact should not be archived")
	}

	got.Phone = "555-0100"
	got.Notes = "met at conference"
	got.UpdatedAt = time.Now().UTC()
	if err := s.UpdateContact(ctx, got); err != nil {
		t.Fatalf("update contact: %v", err)
	}

	got, err = s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Phone != "555-0100" || got.Notes != "met at conference" {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := s.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	if _, err := s.GetContact(ctx, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestContactNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetContact(ctx, "con-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteContact(ctx, "con-missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.SetContactStarred(ctx, "con-missing", true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("star: expected ErrNotFound, got %v", err)
	}
}

func TestContactEmailUniqueCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateContact(t, s, "Ada", "Lovelace", "ada@example.com")

	now := time.Now().UTC()
	dup := &domain.Contact{
		ID:        id.MustNew(id.PrefixContact),
		FirstName: "Adah",
		LastName:  "Lovelock",
		Email:     "ADA@EXAMPLE.COM",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateContact(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for duplicate email, got %v", err)
	}

	// Multiple contacts without email are fine.
	mustCreateContact(t, s, "Grace", "Hopper", "")
	mustCreateContact(t, s, "Alan", "Turing", "")
}

func TestContactFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	active := mustCreateContact(t, s, "Ada", "Lovelace", "")
	starred := mustCreateContact(t, s, "Grace", "Hopper", "")
	archived := mustCreateContact(t, s, "Alan", "Turing", "")

	if _, err := s.SetContactStarred(ctx, starred.ID, true); err != nil {
		t.Fatalf("star: %v", err)
	}
	if _, err := s.SetContactArchived(ctx, archived.ID, true); err != nil {
		t.Fatalf("archive: %v", err)
	}

	ids := func(contacts []*domain.Contact) map[string]bool {
		m := make(map[string]bool)
		for _, c := range contacts {
			m[c.ID] = true
		}
		return m
	}

	got, err := s.ListContacts(ctx, store.ContactQuery{})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if m := ids(got); !m[active.ID] || !m[starred.ID] || m[archived.ID] {
		t.Errorf("active filter wrong: %v", m)
	}

	got, err = s.ListContacts(ctx, store.ContactQuery{Filter: domain.FilterStarred})
	if err != nil {
		t.Fatalf("list starred: %v", err)
	}
	if m := ids(got); len(m) != 1 || !m[starred.ID] {
		t.Errorf("starred filter wrong: %v", m)
	}

	got, err = s.ListContacts(ctx, store.ContactQuery{Filter: domain.FilterArchived})
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if m := ids(got); len(m) != 1 || !m[archived.ID] {
		t.Errorf("archived filter wrong: %v", m)
	}
}

func TestContactSearchIsSubsetOfActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateContact(t, s, "Ada", "Lovelace", "ada@example.com")
	mustCreateContact(t, s, "Grace", "Hopper", "grace@navy.mil")
	mustCreateContact(t, s, "Adam", "Smith", "")

	all, err := s.ListContacts(ctx, store.ContactQuery{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	allIDs := make(map[string]bool)
	for _, c := range all {
		allIDs[c.ID] = true
	}

	for _, q := range []string{"ada", "ADA", "lovelace", "ada lovelace", "grace@", "zzz"} {
		got, err := s.ListContacts(ctx, store.ContactQuery{Search: q})
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		for _, c := range got {
			if !allIDs[c.ID] {
				t.Errorf("search %q returned contact outside active set: %s", q, c.ID)
			}
		}
	}

	got, err := s.ListContacts(ctx, store.ContactQuery{Search: "ada lovelace"})
	if err != nil {
		t.Fatalf("search full name: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Ada" {
		t.Errorf("full-name search should match the concatenated name, got %d results", len(got))
	}
}

func TestContactSortLastNameStable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateContact(t, s, "Zoe", "smith", "")
	mustCreateContact(t, s, "Adam", "Smith", "")
	mustCreateContact(t, s, "Ada", "Lovelace", "")

	got, err := s.ListContacts(ctx, store.ContactQuery{Sort: domain.SortLastName})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}
	if got[0].LastName != "Lovelace" {
		t.Errorf("expected Lovelace first, got %s", got[0].LastName)
	}
	// Equal last names (case-insensitive) order by first name.
	if got[1].FirstName != "Adam" || got[2].FirstName != "Zoe" {
		t.Errorf("tie-break by first name failed: %s, %s", got[1].FirstName, got[2].FirstName)
	}
}

func TestContactSortCompany(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acme := mustCreateCompany(t, s, "Acme")
	zenith := mustCreateCompany(t, s, "Zenith")

	withZenith := mustCreateContact(t, s, "Ada", "Lovelace", "")
	withZenith.CompanyID = zenith.ID
	if err := s.UpdateContact(ctx, withZenith); err != nil {
		t.Fatalf("assign company: %v", err)
	}

	withAcme := mustCreateContact(t, s, "Grace", "Hopper", "")
	withAcme.CompanyID = acme.ID
	if err := s.UpdateContact(ctx, withAcme); err != nil {
		t.Fatalf("assign company: %v", err)
	}

	solo := mustCreateContact(t, s, "Alan", "Turing", "")

	got, err := s.ListContacts(ctx, store.ContactQuery{Sort: domain.SortCompany})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}
	// No company collates as empty string, first.
	if got[0].ID != solo.ID {
		t.Errorf("contact without company should sort first, got %s", got[0].LastName)
	}
	if got[1].ID != withAcme.ID || got[2].ID != withZenith.ID {
		t.Errorf("company order wrong: %s, %s", got[1].LastName, got[2].LastName)
	}
	if got[2].Company == nil || got[2].Company.Name != "Zenith" {
		t.Errorf("company should be joined onto listing rows")
	}
}

func TestContactSortNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"First", "Second", "Third"} {
		c := &domain.Contact{
			ID:        id.MustNew(id.PrefixContact),
			FirstName: name,
			LastName:  "Person",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base,
		}
		if err := s.CreateContact(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := s.ListContacts(ctx, store.ContactQuery{Sort: domain.SortNewest})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].FirstName != "Third" || got[2].FirstName != "First" {
		t.Errorf("created_at sort should be newest first: %s .. %s", got[0].FirstName, got[2].FirstName)
	}
}

func TestStarAndArchiveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateContact(t, s, "Ada", "Lovelace", "")

	once, err := s.SetContactStarred(ctx, c.ID, !c.Starred)
	if err != nil {
		t.Fatalf("star: %v", err)
	}
	if !once.Starred {
		t.Error("expected starred after first toggle")
	}
	twice, err := s.SetContactStarred(ctx, c.ID, !once.Starred)
	if err != nil {
		t.Fatalf("unstar: %v", err)
	}
	if twice.Starred != c.Starred {
		t.Error("two star toggles should restore the original value")
	}

	archived, err := s.SetContactArchived(ctx, c.ID, true)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if !archived.Archived() {
		t.Error("expected archived_at set")
	}
	restored, err := s.SetContactArchived(ctx, c.ID, false)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Archived() {
		t.Error("two archive toggles should restore active state")
	}
}

func TestDeleteContactCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateContact(t, s, "Ada", "Lovelace", "")
	a := mustCreateActivity(t, s, c.ID, domain.ActivityNote, "hello", time.Now().UTC())

	tag := &domain.Tag{ID: id.MustNew(id.PrefixTag), Name: "Client", Color: "#00f", CreatedAt: time.Now().UTC()}
	if err := s.CreateTag(ctx, tag); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := s.AddContactTag(ctx, c.ID, tag.ID); err != nil {
		t.Fatalf("tag contact: %v", err)
	}

	if err := s.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}

	if _, err := s.GetActivity(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("activity should cascade on contact delete, got %v", err)
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM contact_tags WHERE contact_id = ?", c.ID).Scan(&n); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 0 {
		t.Errorf("tag links should cascade, %d remain", n)
	}
	// The tag itself survives.
	if _, err := s.GetTag(ctx, tag.ID); err != nil {
		t.Errorf("tag should survive contact delete: %v", err)
	}
}

func TestDeleteCompanyNullsContactReference(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acme := mustCreateCompany(t, s, "Acme")
	c := mustCreateContact(t, s, "Ada", "Lovelace", "")
	c.CompanyID = acme.ID
	if err := s.UpdateContact(ctx, c); err != nil {
		t.Fatalf("assign company: %v", err)
	}

	if _, err := s.db.Exec("DELETE FROM companies WHERE id = ?", acme.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}

	got, err := s.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if got.CompanyID != "" || got.Company != nil {
		t.Errorf("company reference should be nulled, got %q", got.CompanyID)
	}
}

func TestListContactsEmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.ListContacts(context.Background(), store.ContactQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil {
		t.Error("empty result should be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no contacts, got %d", len(got))
	}
}
