package http

import (
	"log/slog"
	"net/http"
)

// handleProjectedItems serves the merged planning timeline. Any source fetch
// failure fails the whole view; there is no partial aggregation to fall back
// to, so the client gets one error.
func (s *Server) handleProjectedItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.projections.ProjectedItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Projection failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute projected items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleProjectedCategories(w http.ResponseWriter, r *http.Request) {
	totals, err := s.projections.ProjectedSourceTotals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Projected source totals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute projected source totals")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleBudgetMonthly(w http.ResponseWriter, r *http.Request) {
	totals, err := s.projections.BudgetMonthlyTotals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly totals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute monthly totals")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleBudgetCategories(w http.ResponseWriter, r *http.Request) {
	totals, err := s.projections.BudgetCategoryTotals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category totals failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute category totals")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
