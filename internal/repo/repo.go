// Package repo wraps the document store with typed views of the planning
// collections. Raw store rows never travel above this boundary: each decoder
// coerces a schemaless document into its record type.
package repo

import (
	"context"
	"fmt"

	"bearpaw/internal/core"
	"bearpaw/internal/store"
)

type Needs struct {
	store store.Store
}

func NewNeeds(s store.Store) *Needs { return &Needs{store: s} }

func (r *Needs) List(ctx context.Context) ([]core.NeedsItem, error) {
	records, err := r.store.List(ctx, core.KindNeedsItems)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", core.KindNeedsItems, err)
	}
	items := make([]core.NeedsItem, len(records))
	for i, rec := range records {
		items[i] = DecodeNeedsItem(rec)
	}
	return items, nil
}

type Inventory struct {
	store store.Store
}

func NewInventory(s store.Store) *Inventory { return &Inventory{store: s} }

func (r *Inventory) List(ctx context.Context) ([]core.InventoryItem, error) {
	records, err := r.store.List(ctx, core.KindInventoryItems)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", core.KindInventoryItems, err)
	}
	items := make([]core.InventoryItem, len(records))
	for i, rec := range records {
		items[i] = DecodeInventoryItem(rec)
	}
	return items, nil
}

type Tools struct {
	store store.Store
}

func NewTools(s store.Store) *Tools { return &Tools{store: s} }

func (r *Tools) List(ctx context.Context) ([]core.ToolItem, error) {
	records, err := r.store.List(ctx, core.KindTools)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", core.KindTools, err)
	}
	items := make([]core.ToolItem, len(records))
	for i, rec := range records {
		items[i] = DecodeToolItem(rec)
	}
	return items, nil
}

type Budget struct {
	store store.Store
}

func NewBudget(s store.Store) *Budget { return &Budget{store: s} }

func (r *Budget) List(ctx context.Context) ([]core.BudgetItem, error) {
	records, err := r.store.List(ctx, core.KindBudgetItems)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", core.KindBudgetItems, err)
	}
	items := make([]core.BudgetItem, len(records))
	for i, rec := range records {
		items[i] = DecodeBudgetItem(rec)
	}
	return items, nil
}

func DecodeNeedsItem(rec store.Record) core.NeedsItem {
	qty, _ := fieldInt(rec.Fields, "quantity")
	return core.NeedsItem{
		ID:          rec.ID,
		Description: fieldString(rec.Fields, "description"),
		Price:       fieldFloatPtr(rec.Fields, "price"),
		Quantity:    qty,
		CreatedAt:   rec.CreatedAt(),
	}
}

func DecodeInventoryItem(rec store.Record) core.InventoryItem {
	return core.InventoryItem{
		ID:              rec.ID,
		Name:            fieldString(rec.Fields, "name"),
		Type:            core.InventoryType(fieldString(rec.Fields, "type")),
		Quantity:        fieldIntPtr(rec.Fields, "quantity"),
		State:           fieldStringPtr(rec.Fields, "state"),
		ReplacementDate: fieldStringPtr(rec.Fields, "replacement_date"),
		CreatedAt:       rec.CreatedAt(),
	}
}

func DecodeToolItem(rec store.Record) core.ToolItem {
	qty, _ := fieldInt(rec.Fields, "quantity")
	return core.ToolItem{
		ID:         rec.ID,
		Name:       fieldString(rec.Fields, "name"),
		Quantity:   qty,
		Electric:   fieldBool(rec.Fields, "electric"),
		Consumable: fieldBool(rec.Fields, "consumable"),
		CreatedAt:  rec.CreatedAt(),
	}
}

func DecodeBudgetItem(rec store.Record) core.BudgetItem {
	cost, _ := fieldFloat(rec.Fields, "cost")
	return core.BudgetItem{
		ID:          rec.ID,
		Name:        fieldString(rec.Fields, "name"),
		Type:        core.BudgetType(fieldString(rec.Fields, "type")),
		Cost:        cost,
		PaymentDate: fieldStringPtr(rec.Fields, "payment_date"),
		CreatedAt:   rec.CreatedAt(),
	}
}
