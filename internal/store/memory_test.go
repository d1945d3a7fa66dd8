package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// fixedClock returns a clock that serves a sequence of instants so created_at
// stamps are deterministic. Inject it with WithClock.
func fixedClock(t *testing.T, instants ...time.Time) func() time.Time {
	t.Helper()
	i := 0
	return func() time.Time {
		if i >= len(instants) {
			t.Fatalf("clock exhausted after %d calls", len(instants))
		}
		next := instants[i]
		i++
		return next
	}
}

func TestMemoryStoreCreateStampsCreatedAt(t *testing.T) {
	s := NewMemoryStore().WithClock(fixedClock(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	rec, err := s.Create(context.Background(), "needs_items", Fields{"description": "Firewood"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "1" {
		t.Errorf("first id = %q, want %q", rec.ID, "1")
	}
	if got := rec.CreatedAt(); got != "2025-06-15T12:00:00Z" {
		t.Errorf("created_at = %q, want stamped RFC 3339", got)
	}
	if rec.Fields["description"] != "Firewood" {
		t.Errorf("description = %v", rec.Fields["description"])
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore().WithClock(fixedClock(t,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	for _, desc := range []string{"first", "second", "third"} {
		if _, err := s.Create(ctx, "ideas_items", Fields{"description": desc}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	records, err := s.List(ctx, "ideas_items")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, len(records))
	for i, r := range records {
		got[i], _ = r.Fields["description"].(string)
	}
	want := []string{"second", "third", "first"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list order = %v, want %v", got, want)
		}
	}
}

func TestMemoryStoreListUnknownKind(t *testing.T) {
	s := NewMemoryStore()
	records, err := s.List(context.Background(), "tools")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("unknown kind must list empty, got %v", records)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "tools", "42"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(context.Background(), "tools", "not-numeric"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get non-numeric id = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore().WithClock(fixedClock(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)))
	rec, err := s.Create(ctx, "tools", Fields{"name": "Axe", "consumable": false})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Update without created_at keeps the original stamp.
	if err := s.Update(ctx, "tools", rec.ID, Fields{"name": "Splitting axe", "consumable": false}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := s.Get(ctx, "tools", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Fields["name"] != "Splitting axe" {
		t.Errorf("name = %v", got.Fields["name"])
	}
	if got.CreatedAt() != "2025-06-15T12:00:00Z" {
		t.Errorf("created_at after update = %q, want original stamp", got.CreatedAt())
	}

	if err := s.Update(ctx, "tools", "999", Fields{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec, err := s.Create(ctx, "needs_items", Fields{"description": "Rope"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(ctx, "needs_items", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "needs_items", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "needs_items", rec.ID); err != nil {
		t.Errorf("second Delete = %v, want nil", err)
	}
	if err := s.Delete(ctx, "needs_items", "not-numeric"); err != nil {
		t.Errorf("Delete non-numeric id = %v, want nil", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec, err := s.Create(ctx, "tools", Fields{"name": "Axe"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec.Fields["name"] = "mutated"
	got, err := s.Get(ctx, "tools", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Fields["name"] != "Axe" {
		t.Errorf("stored doc mutated through returned record: %v", got.Fields["name"])
	}
}

func TestRecordMarshalFlattens(t *testing.T) {
	rec := Record{ID: "7", Fields: Fields{"name": "Axe", "created_at": "2025-06-15T12:00:00Z"}}
	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["id"] != "7" || out["name"] != "Axe" || out["created_at"] != "2025-06-15T12:00:00Z" {
		t.Errorf("flattened shape = %v", out)
	}
}
