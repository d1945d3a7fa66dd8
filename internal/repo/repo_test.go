package repo

import (
	"context"
	"testing"

	"bearpaw/internal/core"
	"bearpaw/internal/store"
)

func TestDecodeBudgetItem(t *testing.T) {
	tests := []struct {
		name   string
		fields store.Fields
		want   core.BudgetItem
	}{
		{
			name: "complete document",
			fields: store.Fields{
				"name":         "Electric",
				"type":         "monthly",
				"cost":         100.0,
				"payment_date": "2025-07-01",
				"created_at":   "2025-06-01T00:00:00Z",
			},
			want: core.BudgetItem{
				ID:          "1",
				Name:        "Electric",
				Type:        core.BudgetMonthly,
				Cost:        100,
				PaymentDate: strPtr("2025-07-01"),
				CreatedAt:   "2025-06-01T00:00:00Z",
			},
		},
		{
			name:   "cost stored as string",
			fields: store.Fields{"name": "Dock", "type": "one-time", "cost": "450.50"},
			want:   core.BudgetItem{ID: "1", Name: "Dock", Type: core.BudgetOneTime, Cost: 450.50},
		},
		{
			name:   "missing fields coerce to zero values",
			fields: store.Fields{},
			want:   core.BudgetItem{ID: "1"},
		},
		{
			name:   "empty payment_date reads as absent",
			fields: store.Fields{"name": "Roof", "type": "one-time", "payment_date": ""},
			want:   core.BudgetItem{ID: "1", Name: "Roof", Type: core.BudgetOneTime},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeBudgetItem(store.Record{ID: "1", Fields: tt.fields})
			if got.ID != tt.want.ID || got.Name != tt.want.Name || got.Type != tt.want.Type ||
				got.Cost != tt.want.Cost || got.CreatedAt != tt.want.CreatedAt {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if !equalStrPtr(got.PaymentDate, tt.want.PaymentDate) {
				t.Errorf("payment_date = %v, want %v", ptrString(got.PaymentDate), ptrString(tt.want.PaymentDate))
			}
		})
	}
}

func TestDecodeNeedsItem(t *testing.T) {
	rec := store.Record{ID: "3", Fields: store.Fields{
		"description": "Firewood",
		"price":       25.0,
		"quantity":    4.0, // JSON numbers decode as float64
		"created_at":  "2025-06-01T00:00:00Z",
	}}
	got := DecodeNeedsItem(rec)
	if got.Description != "Firewood" || got.Quantity != 4 || got.CreatedAt != "2025-06-01T00:00:00Z" {
		t.Errorf("got %+v", got)
	}
	if got.Price == nil || *got.Price != 25 {
		t.Errorf("price = %v", ptrFloat(got.Price))
	}

	bare := DecodeNeedsItem(store.Record{ID: "4", Fields: store.Fields{"description": "Rope"}})
	if bare.Price != nil {
		t.Errorf("absent price must decode nil, got %v", *bare.Price)
	}
	if bare.Quantity != 0 {
		t.Errorf("absent quantity = %d, want 0", bare.Quantity)
	}
}

func TestDecodeToolItem(t *testing.T) {
	rec := store.Record{ID: "5", Fields: store.Fields{
		"name":       "Chainsaw",
		"quantity":   1.0,
		"electric":   false,
		"consumable": "true", // older clients wrote booleans as strings
	}}
	got := DecodeToolItem(rec)
	if got.Name != "Chainsaw" || got.Quantity != 1 || got.Electric || !got.Consumable {
		t.Errorf("got %+v", got)
	}
}

func TestDecodeInventoryItem(t *testing.T) {
	rec := store.Record{ID: "6", Fields: store.Fields{
		"name":             "Propane",
		"type":             "consumable",
		"quantity":         2.0,
		"state":            "low",
		"replacement_date": "2025-08-01",
	}}
	got := DecodeInventoryItem(rec)
	if got.Name != "Propane" || got.Type != core.InventoryConsumable {
		t.Errorf("got %+v", got)
	}
	if got.Quantity == nil || *got.Quantity != 2 {
		t.Errorf("quantity = %v", got.Quantity)
	}
	if got.State == nil || *got.State != "low" {
		t.Errorf("state = %v", ptrString(got.State))
	}
	if got.ReplacementDate == nil || *got.ReplacementDate != "2025-08-01" {
		t.Errorf("replacement_date = %v", ptrString(got.ReplacementDate))
	}
}

func TestBudgetListDecodesStoreRows(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	if _, err := mem.Create(ctx, core.KindBudgetItems, store.Fields{"name": "Electric", "type": "monthly", "cost": 100.0}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	items, err := NewBudget(mem).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Name != "Electric" || items[0].Type != core.BudgetMonthly || items[0].Cost != 100 {
		t.Errorf("decoded item = %+v", items[0])
	}
	if items[0].CreatedAt == "" {
		t.Error("created_at not carried through decode")
	}
}

func strPtr(s string) *string { return &s }

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ptrString(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func ptrFloat(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
