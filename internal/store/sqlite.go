package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every record in a single documents table: one row per
// record, the schemaless body serialized as JSON, kind and created_at lifted
// into columns for querying. Row ids double as record ids.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// WithClock overrides the created_at clock. Tests use it to pin stamps.
func (s *SQLiteStore) WithClock(now func() time.Time) *SQLiteStore {
	s.now = now
	return s
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: defaultNow}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, kind string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE kind = ? ORDER BY created_at DESC, id DESC`, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var id int64
		var body []byte
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", kind, err)
		}
		fields, err := decodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%d: %w", kind, id, err)
		}
		records = append(records, Record{ID: strconv.FormatInt(id, 10), Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", kind, err)
	}
	return records, nil
}

func (s *SQLiteStore) Get(ctx context.Context, kind, id string) (*Record, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	var body []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE kind = ? AND id = ?`, kind, numID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", kind, id, err)
	}

	fields, err := decodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", kind, id, err)
	}
	return &Record{ID: id, Fields: fields}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, kind string, fields Fields) (Record, error) {
	doc := stampCreatedAt(fields, s.now)
	body, err := json.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s document: %w", kind, err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (kind, body, created_at) VALUES (?, ?, ?)`,
		kind, body, doc[FieldCreatedAt])
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("read %s insert id: %w", kind, err)
	}
	return Record{ID: strconv.FormatInt(id, 10), Fields: doc}, nil
}

func (s *SQLiteStore) Update(ctx context.Context, kind, id string, fields Fields) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	var existingCreatedAt string
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM documents WHERE kind = ? AND id = ?`, kind, numID).Scan(&existingCreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup %s/%s: %w", kind, id, err)
	}

	doc := make(Fields, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	createdAt, ok := doc[FieldCreatedAt].(string)
	if !ok || createdAt == "" {
		createdAt = existingCreatedAt
		doc[FieldCreatedAt] = createdAt
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", kind, err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = ?, created_at = ? WHERE kind = ? AND id = ?`,
		body, createdAt, kind, numID); err != nil {
		return fmt.Errorf("update %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, kind, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE kind = ? AND id = ?`, kind, numID); err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}

func decodeBody(body []byte) (Fields, error) {
	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}
