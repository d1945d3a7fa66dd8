// Package services composes repositories into the derived read views.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"bearpaw/internal/core"
	"bearpaw/internal/repo"
	"bearpaw/internal/store"
)

// ProjectionService computes the projected-items timeline. The four source
// fetches run concurrently; the merge itself is a pure function of the
// snapshot. The store gives no cross-collection transaction, so a write
// racing the fetches may or may not be reflected — accepted read skew for
// this view.
type ProjectionService struct {
	needs     *repo.Needs
	inventory *repo.Inventory
	tools     *repo.Tools
	budget    *repo.Budget

	now func() time.Time
}

func NewProjectionService(s store.Store) *ProjectionService {
	return &ProjectionService{
		needs:     repo.NewNeeds(s),
		inventory: repo.NewInventory(s),
		tools:     repo.NewTools(s),
		budget:    repo.NewBudget(s),
		now:       time.Now,
	}
}

// WithClock overrides the evaluation clock. Tests use it to pin "future".
func (s *ProjectionService) WithClock(now func() time.Time) *ProjectionService {
	s.now = now
	return s
}

// ProjectedItems fetches the four source collections and merges them. One
// failed fetch fails the whole projection; there is no partial aggregation.
func (s *ProjectionService) ProjectedItems(ctx context.Context) ([]core.ProjectedItem, error) {
	var snap core.Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.needs.List(ctx)
		if err != nil {
			return fmt.Errorf("fetch needs: %w", err)
		}
		snap.Needs = items
		return nil
	})
	g.Go(func() error {
		items, err := s.inventory.List(ctx)
		if err != nil {
			return fmt.Errorf("fetch inventory: %w", err)
		}
		snap.Inventory = items
		return nil
	})
	g.Go(func() error {
		items, err := s.tools.List(ctx)
		if err != nil {
			return fmt.Errorf("fetch tools: %w", err)
		}
		snap.Tools = items
		return nil
	})
	g.Go(func() error {
		items, err := s.budget.List(ctx)
		if err != nil {
			return fmt.Errorf("fetch budget: %w", err)
		}
		snap.Budget = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return core.BuildProjection(snap, s.now()), nil
}

// ProjectedSourceTotals returns the projected cost summed per source
// collection, computed from the same merged timeline ProjectedItems serves.
func (s *ProjectionService) ProjectedSourceTotals(ctx context.Context) ([]core.SourceTotal, error) {
	items, err := s.ProjectedItems(ctx)
	if err != nil {
		return nil, err
	}
	return core.ProjectedSourceTotals(items), nil
}

// BudgetMonthlyTotals returns the current-calendar-year month buckets.
func (s *ProjectionService) BudgetMonthlyTotals(ctx context.Context) ([]core.MonthTotal, error) {
	items, err := s.budget.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch budget: %w", err)
	}
	return core.MonthlyTotals(items, s.now().Year()), nil
}

// BudgetCategoryTotals returns the annualized category breakdown.
func (s *ProjectionService) BudgetCategoryTotals(ctx context.Context) ([]core.CategoryTotal, error) {
	items, err := s.budget.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch budget: %w", err)
	}
	return core.CategoryTotals(items, s.now().Year()), nil
}
