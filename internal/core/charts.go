package core

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// MonthTotal is one bar of the monthly spending chart.
type MonthTotal struct {
	Month string  `json:"month"` // "Jan 06" style label
	Total float64 `json:"total"`
}

// CategoryTotal is one slice of the annual breakdown pie.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SourceTotal is one bar of the projected-cost chart.
type SourceTotal struct {
	Source ProjectionSource `json:"source"`
	Total  float64          `json:"total"`
}

// MonthlyTotals buckets budget costs into the twelve months of the given
// calendar year. A monthly item recurs, so its cost lands in every bucket; a
// one-time item lands in its payment month when the payment date parses and
// falls inside the year. Sums accumulate as decimals so repeated float
// addition cannot drift the totals.
func MonthlyTotals(items []BudgetItem, year int) []MonthTotal {
	totals := make([]decimal.Decimal, 12)

	for _, item := range items {
		switch item.Type {
		case BudgetMonthly:
			cost := decimal.NewFromFloat(item.Cost)
			for m := range totals {
				totals[m] = totals[m].Add(cost)
			}
		case BudgetOneTime:
			if item.PaymentDate == nil || *item.PaymentDate == "" {
				continue
			}
			when, ok := ParseDate(*item.PaymentDate)
			if !ok {
				slog.Warn("Unparseable payment_date in monthly totals",
					"kind", KindBudgetItems, "id", item.ID, "payment_date", *item.PaymentDate)
				continue
			}
			if when.Year() != year {
				continue
			}
			m := int(when.Month()) - 1
			totals[m] = totals[m].Add(decimal.NewFromFloat(item.Cost))
		}
	}

	out := make([]MonthTotal, 12)
	for m := range out {
		label := time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC).Format("Jan 06")
		out[m] = MonthTotal{Month: label, Total: totals[m].InexactFloat64()}
	}
	return out
}

// ProjectedSourceTotals sums projected item costs per source collection.
// Items without a cost (inventory and tools carry none) contribute nothing,
// and sources whose total stays at zero are dropped. Output order is the
// fixed source order of the projection.
func ProjectedSourceTotals(items []ProjectedItem) []SourceTotal {
	totals := map[ProjectionSource]decimal.Decimal{}
	for _, item := range items {
		if item.Cost == nil {
			continue
		}
		totals[item.Source] = totals[item.Source].Add(decimal.NewFromFloat(*item.Cost))
	}

	sources := []ProjectionSource{
		SourceNeeds,
		SourceConsumableInventory,
		SourceConsumableTools,
		SourceFutureOneTimeBudget,
	}
	out := make([]SourceTotal, 0, len(sources))
	for _, src := range sources {
		if total, ok := totals[src]; ok && total.IsPositive() {
			out = append(out, SourceTotal{Source: src, Total: total.InexactFloat64()})
		}
	}
	return out
}

// CategoryTotals summarizes a year of budget spending by category: each
// monthly item annualized under "{name} (Monthly)", every one-time item paid
// during the year pooled into a single "One-Time Expenses" slice. Zero-total
// slices are dropped. Output order is first appearance, one-time pool last.
func CategoryTotals(items []BudgetItem, year int) []CategoryTotal {
	var order []string
	byName := map[string]decimal.Decimal{}
	oneTime := decimal.Zero
	twelve := decimal.NewFromInt(12)

	for _, item := range items {
		switch item.Type {
		case BudgetMonthly:
			name := item.Name + " (Monthly)"
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			annual := decimal.NewFromFloat(item.Cost).Mul(twelve)
			byName[name] = byName[name].Add(annual)
		case BudgetOneTime:
			if item.PaymentDate == nil || *item.PaymentDate == "" {
				continue
			}
			when, ok := ParseDate(*item.PaymentDate)
			if !ok {
				slog.Warn("Unparseable payment_date in category totals",
					"kind", KindBudgetItems, "id", item.ID, "payment_date", *item.PaymentDate)
				continue
			}
			if when.Year() == year {
				oneTime = oneTime.Add(decimal.NewFromFloat(item.Cost))
			}
		}
	}

	out := make([]CategoryTotal, 0, len(order)+1)
	for _, name := range order {
		if byName[name].IsZero() {
			continue
		}
		out = append(out, CategoryTotal{Name: name, Value: byName[name].InexactFloat64()})
	}
	if !oneTime.IsZero() {
		out = append(out, CategoryTotal{Name: "One-Time Expenses", Value: oneTime.InexactFloat64()})
	}
	return out
}
