package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/store"
)

func TestActivityCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateContact(t, s, "Ada", "Lovelace", "")
	a := mustCreateActivity(t, s, c.ID, domain.ActivityCall, "quarterly check-in", time.Now().UTC())

	got, err := s.GetActivity(ctx, a.ID)
	if err != nil {
		t.Fatalf("get activity: %v", err)
	}
	if got.Kind != domain.ActivityCall || got.Body != "quarterly check-in" {
		t.Errorf("unexpected activity: %+v", got)
	}
	if got.ContactFirstName != "Ada" || got.ContactLastName != "Lovelace" {
		t.Errorf("contact name should be joined: %+v", got)
	}

	if err := s.UpdateActivity(ctx, a.ID, domain.ActivityEmail, "followed up by email"); err != nil {
		t.Fatalf("update activity: %v", err)
	}
	got, err = s.GetActivity(ctx, a.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Kind != domain.ActivityEmail || got.Body != "followed up by email" {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := s.DeleteActivity(ctx, a.ID); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	if _, err := s.GetActivity(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListContactActivities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := mustCreateContact(t, s, "Ada", "Lovelace", "")
	other := mustCreateContact(t, s, "Grace", "Hopper", "")

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	oldNote := mustCreateActivity(t, s, c.ID, domain.ActivityNote, "old note", base)
	call := mustCreateActivity(t, s, c.ID, domain.ActivityCall, "a call", base.Add(time.Hour))
	newNote := mustCreateActivity(t, s, c.ID, domain.ActivityNote, "new note", base.Add(2*time.Hour))
	mustCreateActivity(t, s, other.ID, domain.ActivityNote, "someone else", base)

	got, err := s.ListContactActivities(ctx, c.ID, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(got))
	}
	if got[0].ID != newNote.ID || got[2].ID != oldNote.ID {
		t.Error("activities should be newest first")
	}

	notes, err := s.ListContactActivities(ctx, c.ID, domain.ActivityNote)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("kind filter should be exact, got %d", len(notes))
	}
	for _, a := range notes {
		if a.ID == call.ID {
			t.Error("call leaked into note filter")
		}
	}
}

func TestListActivitiesGlobal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ada := mustCreateContact(t, s, "Ada", "Lovelace", "")
	grace := mustCreateContact(t, s, "Grace", "Hopper", "")

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	mustCreateActivity(t, s, ada.ID, domain.ActivityNote, "compiler ideas", base)
	mustCreateActivity(t, s, grace.ID, domain.ActivityCall, "about COBOL", base.Add(time.Hour))

	all, err := s.ListActivities(ctx, store.ActivityQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(all))
	}
	if all[0].ContactFirstName != "Grace" {
		t.Error("feed should be newest first with joined names")
	}

	// Search matches the body.
	got, err := s.ListActivities(ctx, store.ActivityQuery{Search: "compiler"})
	if err != nil {
		t.Fatalf("search body: %v", err)
	}
	if len(got) != 1 || got[0].ContactFirstName != "Ada" {
		t.Errorf("body search failed: %d results", len(got))
	}

	// Search matches the contact name, case-insensitively.
	got, err = s.ListActivities(ctx, store.ActivityQuery{Search: "HOPPER"})
	if err != nil {
		t.Fatalf("search name: %v", err)
	}
	if len(got) != 1 || got[0].ContactFirstName != "Grace" {
		t.Errorf("name search failed: %d results", len(got))
	}

	// Kind and search compose.
	got, err = s.ListActivities(ctx, store.ActivityQuery{Kind: domain.ActivityNote, Search: "hopper"})
	if err != nil {
		t.Fatalf("combined: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no note by hopper, got %d", len(got))
	}
}
