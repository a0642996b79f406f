package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rolodexapp/rolodex-server/internal/domain"
	"github.com/rolodexapp/rolodex-server/internal/id"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateContact inserts a contact with sane defaults.
func mustCreateContact(t *testing.T, s *Store, first, last, email string) *domain.Contact {
	t.Helper()
	now := time.Now().UTC()
	c := &domain.Contact{
		ID:        id.MustNew(id.PrefixContact),
		FirstName: first,
		LastName:  last,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateContact(context.Background(), c); err != nil {
		t.Fatalf("create contact %s %s: %v", first, last, err)
	}
	return c
}

func mustCreateCompany(t *testing.T, s *Store, name string) *domain.Company {
	t.Helper()
	now := time.Now().UTC()
	c := &domain.Company{
		ID:        id.MustNew(id.PrefixCompany),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateCompany(context.Background(), c); err != nil {
		t.Fatalf("create company %s: %v", name, err)
	}
	return c
}

func mustCreateActivity(t *testing.T, s *Store, contactID string, kind domain.ActivityKind, body string, createdAt time.Time) *domain.Activity {
	t.Helper()
	a := &domain.Activity{
		ID:        id.MustNew(id.PrefixActivity),
		ContactID: contactID,
		Kind:      kind,
		Body:      body,
		CreatedAt: createdAt,
	}
	if err := s.CreateActivity(context.Background(), a); err != nil {
		t.Fatalf("create activity: %v", err)
	}
	return a
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	tables := []string{"companies", "contacts", "tags", "contact_tags", "activities"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	defer s2.Close()
}
