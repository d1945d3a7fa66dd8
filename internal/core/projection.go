package core

import (
	"log/slog"
	"sort"
	"time"
)

// ProjectionSource identifies which collection a projected item came from.
type ProjectionSource string

const (
	SourceNeeds               ProjectionSource = "Needs"
	SourceConsumableInventory ProjectionSource = "Consumable Inventory"
	SourceConsumableTools     ProjectionSource = "Consumable Tools"
	SourceFutureOneTimeBudget ProjectionSource = "Future One-Time Budget"
)

// ProjectedItem is the derived forward-planning view merging the four source
// collections. It is never persisted; every read recomputes it.
type ProjectedItem struct {
	ID          string           `json:"id"`
	Source      ProjectionSource `json:"source"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity"`
	Cost        *float64         `json:"cost"`
	Date        *string          `json:"date"`
	CreatedAt   string           `json:"created_at"`
}

// Snapshot is one fetch of the four source collections.
type Snapshot struct {
	Needs     []NeedsItem
	Inventory []InventoryItem
	Tools     []ToolItem
	Budget    []BudgetItem
}

// BuildProjection merges a snapshot into a single list ordered ascending by
// effective instant: the item's own date when it parses, else its created_at.
// The sort is stable, so ties keep input order. A one-time budget item counts
// only when its payment date is strictly in the future of now; an unparseable
// date never drops a record, it just falls back to created_at ordering.
func BuildProjection(snap Snapshot, now time.Time) []ProjectedItem {
	items := make([]ProjectedItem, 0,
		len(snap.Needs)+len(snap.Inventory)+len(snap.Tools)+len(snap.Budget))

	for _, n := range snap.Needs {
		qty := n.Quantity
		items = append(items, ProjectedItem{
			ID:          n.ID,
			Source:      SourceNeeds,
			Description: n.Description,
			Quantity:    &qty,
			Cost:        n.Price,
			Date:        nil,
			CreatedAt:   n.CreatedAt,
		})
	}

	for _, inv := range snap.Inventory {
		if inv.Type != InventoryConsumable {
			continue
		}
		items = append(items, ProjectedItem{
			ID:          inv.ID,
			Source:      SourceConsumableInventory,
			Description: inv.Name,
			Quantity:    inv.Quantity,
			Cost:        nil,
			Date:        validDate(inv.ReplacementDate, KindInventoryItems, inv.ID),
			CreatedAt:   inv.CreatedAt,
		})
	}

	for _, t := range snap.Tools {
		if !t.Consumable {
			continue
		}
		qty := t.Quantity
		items = append(items, ProjectedItem{
			ID:          t.ID,
			Source:      SourceConsumableTools,
			Description: t.Name,
			Quantity:    &qty,
			Cost:        nil,
			Date:        nil,
			CreatedAt:   t.CreatedAt,
		})
	}

	for _, b := range snap.Budget {
		if b.Type != BudgetOneTime || b.PaymentDate == nil || *b.PaymentDate == "" {
			continue
		}
		cost := b.Cost
		when, ok := ParseDate(*b.PaymentDate)
		if !ok {
			// Keep the record; it just loses its place on the timeline.
			slog.Warn("Unparseable payment_date in projection",
				"kind", KindBudgetItems, "id", b.ID, "payment_date", *b.PaymentDate)
			items = append(items, ProjectedItem{
				ID:          b.ID,
				Source:      SourceFutureOneTimeBudget,
				Description: b.Name,
				Quantity:    nil,
				Cost:        &cost,
				Date:        nil,
				CreatedAt:   b.CreatedAt,
			})
			continue
		}
		// Strictly future: a payment due at this exact instant is excluded.
		if !when.After(now) {
			continue
		}
		items = append(items, ProjectedItem{
			ID:          b.ID,
			Source:      SourceFutureOneTimeBudget,
			Description: b.Name,
			Quantity:    nil,
			Cost:        &cost,
			Date:        b.PaymentDate,
			CreatedAt:   b.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return effectiveInstant(items[i]).Before(effectiveInstant(items[j]))
	})
	return items
}

// effectiveInstant is the item's sort key: its date when present and
// parseable, else its created_at. Records whose created_at is also
// unparseable sort to the front on the zero time.
func effectiveInstant(item ProjectedItem) time.Time {
	if item.Date != nil {
		if t, ok := ParseDate(*item.Date); ok {
			return t
		}
	}
	t, _ := ParseDate(item.CreatedAt)
	return t
}

func validDate(date *string, kind, id string) *string {
	if date == nil || *date == "" {
		return nil
	}
	if _, ok := ParseDate(*date); !ok {
		slog.Warn("Unparseable date on record", "kind", kind, "id", id, "date", *date)
		return nil
	}
	return date
}
