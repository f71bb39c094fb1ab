package leads

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Simplici0/dogsclub/internal/db"
	"github.com/Simplici0/dogsclub/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "leads-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database, zerolog.Nop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	s := NewStore(database)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Create(ctx, NewLead{
		Email:        "  Ana@Example.COM ",
		Name:         "Ana",
		WhatsApp:     "+55 11 99999-0000",
		BusinessName: "Banho & Tosa Feliz",
		Message:      "Quero uma análise",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "ana@example.com" {
		t.Fatalf("Email=%q, want lower-case", created.Email)
	}
	if created.Source != SourceApp || created.Status != StatusActive {
		t.Fatalf("unexpected defaults: %+v", created)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID || got.BusinessName != "Banho & Tosa Feliz" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("Get=%+v, want %+v", got, created)
	}
	if got.DeletedAt != nil {
		t.Fatalf("DeletedAt=%v, want nil", got.DeletedAt)
	}
}

func TestCreate_RequiresEmail(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Create(context.Background(), NewLead{Name: "Sem email"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListQueries(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := s.Create(ctx, NewLead{Email: "a@example.com", Source: SourceReport})
	second, _ := s.Create(ctx, NewLead{Email: "A@example.com", Source: SourceContact})
	if _, err := s.Create(ctx, NewLead{Email: "b@example.com", Source: SourceContact}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmail, err := s.ListByEmail(ctx, "A@EXAMPLE.com")
	if err != nil {
		t.Fatalf("ListByEmail: %v", err)
	}
	if len(byEmail) != 2 || byEmail[0].ID != second.ID || byEmail[1].ID != first.ID {
		t.Fatalf("ListByEmail returned %+v", byEmail)
	}

	bySource, err := s.ListBySource(ctx, SourceContact)
	if err != nil {
		t.Fatalf("ListBySource: %v", err)
	}
	if len(bySource) != 2 {
		t.Fatalf("ListBySource returned %d leads, want 2", len(bySource))
	}

	if err := s.UpdateStatus(ctx, first.ID, StatusInactive); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	active, err := s.ListActive(ctx, 0)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive returned %d leads, want 2", len(active))
	}

	limited, err := s.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("ListActive(1): %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("ListActive(1) returned %d leads", len(limited))
	}
}

func TestUpdateStatus_Rejects(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	l, _ := s.Create(ctx, NewLead{Email: "a@example.com"})

	if err := s.UpdateStatus(ctx, l.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := s.UpdateStatus(ctx, "missing", StatusInactive); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddNotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	l, _ := s.Create(ctx, NewLead{Email: "a@example.com"})

	if err := s.AddNotes(ctx, l.ID, " ligar na segunda "); err != nil {
		t.Fatalf("AddNotes: %v", err)
	}
	got, err := s.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Notes != "ligar na segunda" {
		t.Fatalf("Notes=%q", got.Notes)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("UpdatedAt=%v not after CreatedAt=%v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	soft, _ := s.Create(ctx, NewLead{Email: "a@example.com"})
	hard, _ := s.Create(ctx, NewLead{Email: "b@example.com"})

	if err := s.Delete(ctx, soft.ID, false); err != nil {
		t.Fatalf("soft Delete: %v", err)
	}
	got, err := s.Get(ctx, soft.ID)
	if err != nil {
		t.Fatalf("Get after soft delete: %v", err)
	}
	if got.Status != StatusDeleted || got.DeletedAt == nil {
		t.Fatalf("soft-deleted lead = %+v", got)
	}

	if err := s.Delete(ctx, hard.ID, true); err != nil {
		t.Fatalf("hard Delete: %v", err)
	}
	if _, err := s.Get(ctx, hard.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after hard delete, got %v", err)
	}
	if err := s.Delete(ctx, hard.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}

	active, err := s.ListActive(ctx, 10)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("ListActive returned %d leads, want 0", len(active))
	}
}
