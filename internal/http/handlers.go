package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"bearpaw/internal/core"
	"bearpaw/internal/events"
	"bearpaw/internal/store"
)

var knownKinds = func() map[string]bool {
	m := make(map[string]bool, len(core.Kinds))
	for _, k := range core.Kinds {
		m[k] = true
	}
	return m
}()

// collection resolves the {collection} route var, rejecting unknown kinds so
// arbitrary kinds cannot be created through the generic routes.
func collection(w http.ResponseWriter, r *http.Request) (string, bool) {
	kind := mux.Vars(r)["collection"]
	if !knownKinds[kind] {
		writeError(w, http.StatusNotFound, "unknown collection: "+kind)
		return "", false
	}
	return kind, true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	kind, ok := collection(w, r)
	if !ok {
		return
	}

	records, err := s.store.List(r.Context(), kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "List failed", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list "+kind)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	kind, ok := collection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	record, err := s.store.Get(r.Context(), kind, id)
	if errors.Is(err, store.ErrNotFound) {
		// The SPA expects a JSON null body for a missing record.
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Get failed", "kind", kind, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := collection(w, r)
	if !ok {
		return
	}

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	applyKindRules(kind, fields)

	record, err := s.store.Create(r.Context(), kind, fields)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create failed", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create record")
		return
	}

	s.publishChange(r, kind, record.ID, events.ActionCreated)
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	kind, ok := collection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}
	applyKindRules(kind, fields)

	err := s.store.Update(r.Context(), kind, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Update failed", "kind", kind, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update record")
		return
	}

	s.publishChange(r, kind, id, events.ActionUpdated)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := collection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := s.store.Delete(r.Context(), kind, id); err != nil {
		slog.ErrorContext(r.Context(), "Delete failed", "kind", kind, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}

	s.publishChange(r, kind, id, events.ActionDeleted)
	w.WriteHeader(http.StatusNoContent)
}

// decodeFields reads the request body as a schemaless document. The id is
// always store-assigned, so an id field in the body is dropped.
func decodeFields(w http.ResponseWriter, r *http.Request) (store.Fields, bool) {
	var fields store.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if fields == nil {
		fields = store.Fields{}
	}
	delete(fields, "id")
	return fields, true
}

// applyKindRules holds the per-collection write rules. Movies/games only
// keep a players value when the record is a game.
func applyKindRules(kind string, fields store.Fields) {
	if kind == core.KindMoviesGames {
		if t, _ := fields["type"].(string); t != string(core.MediaGame) {
			fields["players"] = nil
		}
	}
}

// publishChange emits a change-feed message. The feed is best-effort: a
// publish failure is logged and never fails the request.
func (s *Server) publishChange(r *http.Request, kind, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRecordChange(r.Context(), kind, id, action); err != nil {
		slog.WarnContext(r.Context(), "Record change publish failed",
			"kind", kind, "id", id, "action", action, "error", err)
	}
}
