package core

import (
	"testing"
)

func TestMonthlyTotalsRecurringItem(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Electric", Type: BudgetMonthly, Cost: 100},
	}
	totals := MonthlyTotals(items, 2025)
	if len(totals) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(totals))
	}
	var sum float64
	for _, mt := range totals {
		if mt.Total != 100 {
			t.Errorf("bucket %s = %v, want 100", mt.Month, mt.Total)
		}
		sum += mt.Total
	}
	// A monthly item contributes exactly 12x its cost over a full year.
	if sum != 1200 {
		t.Errorf("year total = %v, want 1200", sum)
	}
}

func TestMonthlyTotalsLabels(t *testing.T) {
	totals := MonthlyTotals(nil, 2025)
	if totals[0].Month != "Jan 25" {
		t.Errorf("first label = %q, want %q", totals[0].Month, "Jan 25")
	}
	if totals[11].Month != "Dec 25" {
		t.Errorf("last label = %q, want %q", totals[11].Month, "Dec 25")
	}
}

func TestMonthlyTotalsOneTimeItems(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Deck", Type: BudgetOneTime, Cost: 1200, PaymentDate: strPtr("2025-03-10")},
		{ID: "2", Name: "Dock", Type: BudgetOneTime, Cost: 500, PaymentDate: strPtr("2024-03-10")},
		{ID: "3", Name: "No date", Type: BudgetOneTime, Cost: 999},
	}
	totals := MonthlyTotals(items, 2025)
	for i, mt := range totals {
		want := 0.0
		if i == 2 { // March
			want = 1200
		}
		if mt.Total != want {
			t.Errorf("bucket %s = %v, want %v", mt.Month, mt.Total, want)
		}
	}
}

func TestMonthlyTotalsMalformedDate(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Mystery", Type: BudgetOneTime, Cost: 100, PaymentDate: strPtr("not-a-date")},
	}
	totals := MonthlyTotals(items, 2025)
	for _, mt := range totals {
		if mt.Total != 0 {
			t.Errorf("malformed date must contribute nothing, bucket %s = %v", mt.Month, mt.Total)
		}
	}
}

func TestMonthlyTotalsDecimalAccumulation(t *testing.T) {
	// 0.1 added twelve times drifts under float math; decimals must not.
	items := []BudgetItem{
		{ID: "1", Name: "Dues", Type: BudgetMonthly, Cost: 0.1},
	}
	totals := MonthlyTotals(items, 2025)
	var pennies float64
	for _, mt := range totals {
		pennies += mt.Total * 10
	}
	if int(pennies+0.5) != 12 {
		t.Errorf("accumulated %v tenths, want 12", pennies)
	}
	for _, mt := range totals {
		if mt.Total != 0.1 {
			t.Errorf("bucket %s = %v, want 0.1", mt.Month, mt.Total)
		}
	}
}

func TestCategoryTotals(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Electric", Type: BudgetMonthly, Cost: 100},
		{ID: "2", Name: "Deck", Type: BudgetOneTime, Cost: 1200, PaymentDate: strPtr("2025-03-10")},
		{ID: "3", Name: "Dock", Type: BudgetOneTime, Cost: 300, PaymentDate: strPtr("2025-08-01")},
		{ID: "4", Name: "Old roof", Type: BudgetOneTime, Cost: 9000, PaymentDate: strPtr("2019-05-01")},
	}
	totals := CategoryTotals(items, 2025)
	if len(totals) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(totals), totals)
	}
	if totals[0].Name != "Electric (Monthly)" || totals[0].Value != 1200 {
		t.Errorf("monthly bucket = %+v, want Electric (Monthly)=1200", totals[0])
	}
	if totals[1].Name != "One-Time Expenses" || totals[1].Value != 1500 {
		t.Errorf("one-time bucket = %+v, want One-Time Expenses=1500", totals[1])
	}
}

func TestCategoryTotalsDropsZeroBuckets(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Free tier", Type: BudgetMonthly, Cost: 0},
		{ID: "2", Name: "Deck", Type: BudgetOneTime, Cost: 0, PaymentDate: strPtr("2025-03-10")},
	}
	totals := CategoryTotals(items, 2025)
	if len(totals) != 0 {
		t.Errorf("zero buckets must be dropped, got %+v", totals)
	}
}

func TestCategoryTotalsMergesSameName(t *testing.T) {
	items := []BudgetItem{
		{ID: "1", Name: "Electric", Type: BudgetMonthly, Cost: 100},
		{ID: "2", Name: "Electric", Type: BudgetMonthly, Cost: 50},
	}
	totals := CategoryTotals(items, 2025)
	if len(totals) != 1 {
		t.Fatalf("expected merged bucket, got %+v", totals)
	}
	if totals[0].Value != 1800 {
		t.Errorf("merged value = %v, want 1800", totals[0].Value)
	}
}

func TestProjectedSourceTotalsSumsCostPerSource(t *testing.T) {
	items := []ProjectedItem{
		{ID: "needs:1", Source: SourceNeeds, Cost: floatPtr(4000)},
		{ID: "needs:2", Source: SourceNeeds, Cost: floatPtr(250)},
		{ID: "inventory:1", Source: SourceConsumableInventory},
		{ID: "tools:1", Source: SourceConsumableTools},
		{ID: "budget:1", Source: SourceFutureOneTimeBudget, Cost: floatPtr(1200)},
	}
	totals := ProjectedSourceTotals(items)
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d: %+v", len(totals), totals)
	}
	if totals[0].Source != SourceNeeds || totals[0].Total != 4250 {
		t.Errorf("needs total = %+v, want Needs=4250", totals[0])
	}
	if totals[1].Source != SourceFutureOneTimeBudget || totals[1].Total != 1200 {
		t.Errorf("budget total = %+v, want Future One-Time Budget=1200", totals[1])
	}
}

func TestProjectedSourceTotalsDropsNonPositive(t *testing.T) {
	items := []ProjectedItem{
		{ID: "needs:1", Source: SourceNeeds, Cost: floatPtr(0)},
		{ID: "budget:1", Source: SourceFutureOneTimeBudget, Cost: floatPtr(600)},
	}
	totals := ProjectedSourceTotals(items)
	if len(totals) != 1 {
		t.Fatalf("zero-total sources must be dropped, got %+v", totals)
	}
	if totals[0].Source != SourceFutureOneTimeBudget {
		t.Errorf("kept source = %+v", totals[0])
	}
}

func TestProjectedSourceTotalsEmpty(t *testing.T) {
	if totals := ProjectedSourceTotals(nil); len(totals) != 0 {
		t.Errorf("empty input must yield no totals, got %+v", totals)
	}
}
