package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bearpaw/internal/core"
	"bearpaw/internal/events"
	"bearpaw/internal/repo"
	"bearpaw/internal/store"
)

// RowAppender is the sheet side of the exporter, satisfied by SheetsClient.
type RowAppender interface {
	AppendBudgetRow(ctx context.Context, item core.BudgetItem) error
}

// BudgetExporter reacts to record change messages: every created or updated
// budget item is re-read from the store and appended to the sheet.
type BudgetExporter struct {
	store  store.Store
	sheets RowAppender
}

func NewBudgetExporter(st store.Store, sheets RowAppender) *BudgetExporter {
	return &BudgetExporter{store: st, sheets: sheets}
}

// HandleChange processes one change message. Non-budget kinds and deletes are
// ignored; a record that vanished between the message and the read is logged
// and dropped rather than retried forever.
func (e *BudgetExporter) HandleChange(ctx context.Context, msg *events.RecordChangeMessage) error {
	if msg.Kind != core.KindBudgetItems || msg.Action == events.ActionDeleted {
		return nil
	}

	rec, err := e.store.Get(ctx, msg.Kind, msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "Changed record no longer exists, skipping export",
			"kind", msg.Kind, "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s/%s: %w", msg.Kind, msg.ID, err)
	}

	item := repo.DecodeBudgetItem(*rec)
	if err := e.sheets.AppendBudgetRow(ctx, item); err != nil {
		return fmt.Errorf("export %s/%s: %w", msg.Kind, msg.ID, err)
	}

	slog.InfoContext(ctx, "Budget record exported", "id", msg.ID, "action", msg.Action)
	return nil
}
