package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const postgresDDL = `CREATE TABLE IF NOT EXISTS documents (
	id BIGSERIAL PRIMARY KEY,
	kind TEXT NOT NULL,
	body JSONB NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_kind_created_at
	ON documents (kind, created_at DESC)`

// PostgresStore mirrors the SQLite layout on Postgres: one documents table,
// JSONB bodies, row ids as record ids.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// WithClock overrides the created_at clock. Tests use it to pin stamps.
func (s *PostgresStore) WithClock(now func() time.Time) *PostgresStore {
	s.now = now
	return s
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgresDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply documents ddl: %w", err)
	}

	return &PostgresStore{db: db, now: defaultNow}, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, kind string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM documents WHERE kind = $1 ORDER BY created_at DESC, id DESC`, kind)
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

func (s *PostgresStore) Get(ctx context.Context, kind, id string) (*Record, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	var body []byte
	err = s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE kind = $1 AND id = $2`, kind, numID).Scan(&body)
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

func (s *PostgresStore) Create(ctx context.Context, kind string, fields Fields) (Record, error) {
	doc := stampCreatedAt(fields, s.now)
	body, err := json.Marshal(doc)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s document: %w", kind, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO documents (kind, body, created_at) VALUES ($1, $2, $3) RETURNING id`,
		kind, body, doc[FieldCreatedAt]).Scan(&id)
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	return Record{ID: strconv.FormatInt(id, 10), Fields: doc}, nil
}

func (s *PostgresStore) Update(ctx context.Context, kind, id string, fields Fields) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	var existingCreatedAt string
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM documents WHERE kind = $1 AND id = $2`, kind, numID).Scan(&existingCreatedAt)
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
		`UPDATE documents SET body = $1, created_at = $2 WHERE kind = $3 AND id = $4`,
		body, createdAt, kind, numID); err != nil {
		return fmt.Errorf("update %s/%s: %w", kind, id, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, kind, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE kind = $1 AND id = $2`, kind, numID); err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}
