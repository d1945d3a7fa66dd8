// Package store provides the document store the API is backed by: schemaless
// records grouped into named kinds, keyed by a store-assigned numeric id.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Field names stamped by the store itself. They live inside the document so
// callers see them as ordinary fields, but only the store writes them.
const (
	FieldCreatedAt = "created_at"
)

var ErrNotFound = errors.New("record not found")

// Fields is the schemaless body of a record.
type Fields map[string]any

// Record is a stored document plus its store-assigned identifier. The id is
// numeric in every backend but opaque to callers above the adapter.
type Record struct {
	ID     string
	Fields Fields
}

// MarshalJSON flattens the record into {"id": ..., ...fields}, matching the
// wire shape of the API.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

// CreatedAt returns the record's created_at field, or "" when absent.
func (r Record) CreatedAt() string {
	s, _ := r.Fields[FieldCreatedAt].(string)
	return s
}

// Store is the record store adapter contract. Create stamps created_at
// (RFC 3339) and assigns the id. List returns records ordered by created_at
// descending; callers that need another order re-sort.
type Store interface {
	List(ctx context.Context, kind string) ([]Record, error)
	Get(ctx context.Context, kind, id string) (*Record, error)
	Create(ctx context.Context, kind string, fields Fields) (Record, error)
	Update(ctx context.Context, kind, id string, fields Fields) error
	Delete(ctx context.Context, kind, id string) error
	Close() error
}

func defaultNow() time.Time { return time.Now().UTC() }

func stampCreatedAt(fields Fields, now func() time.Time) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldCreatedAt] = now().Format(time.RFC3339)
	return out
}
