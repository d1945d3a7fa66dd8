package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	s, _ := openTestSQLite(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "budget_items", Fields{"name": "Electric", "type": "monthly", "cost": 100.0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Create returned empty id")
	}
	if rec.CreatedAt() == "" {
		t.Error("Create did not stamp created_at")
	}

	got, err := s.Get(ctx, "budget_items", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Fields["name"] != "Electric" {
		t.Errorf("name = %v", got.Fields["name"])
	}
	if got.Fields["cost"] != 100.0 {
		t.Errorf("cost = %v (%T)", got.Fields["cost"], got.Fields["cost"])
	}

	if err := s.Update(ctx, "budget_items", rec.ID, Fields{"name": "Electric", "type": "monthly", "cost": 120.0}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = s.Get(ctx, "budget_items", rec.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Fields["cost"] != 120.0 {
		t.Errorf("cost after update = %v", got.Fields["cost"])
	}
	if got.CreatedAt() != rec.CreatedAt() {
		t.Errorf("created_at changed on update: %q -> %q", rec.CreatedAt(), got.CreatedAt())
	}

	if err := s.Delete(ctx, "budget_items", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "budget_items", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "budget_items", rec.ID); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
}

func TestSQLiteStoreKindsAreSeparate(t *testing.T) {
	s, _ := openTestSQLite(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "tools", Fields{"name": "Axe"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(ctx, "needs_items", Fields{"description": "Rope"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tools, err := s.List(ctx, "tools")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tools) != 1 {
		t.Fatalf("tools list = %d records, want 1", len(tools))
	}
	empty, err := s.List(ctx, "movies_games")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unused kind list = %d records, want 0", len(empty))
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	s, dbPath := openTestSQLite(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "ideas_items", Fields{"description": "Sauna"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "ideas_items", rec.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Fields["description"] != "Sauna" {
		t.Errorf("description = %v", got.Fields["description"])
	}
}

func TestSQLiteStoreNonNumericID(t *testing.T) {
	s, _ := openTestSQLite(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "tools", "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get non-numeric id = %v, want ErrNotFound", err)
	}
	if err := s.Update(ctx, "tools", "abc", Fields{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update non-numeric id = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "tools", "abc"); err != nil {
		t.Errorf("Delete non-numeric id = %v, want nil", err)
	}
}
