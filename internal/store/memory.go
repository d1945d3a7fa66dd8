package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is an in-memory document store used for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	kinds map[string]*memoryKind
	now   func() time.Time
}

type memoryKind struct {
	nextID int64
	docs   map[int64]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kinds: make(map[string]*memoryKind), now: defaultNow}
}

// WithClock overrides the created_at clock. Tests use it to pin stamps.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) bucket(kind string) *memoryKind {
	b, ok := s.kinds[kind]
	if !ok {
		b = &memoryKind{nextID: 1, docs: make(map[int64]Fields)}
		s.kinds[kind] = b
	}
	return b
}

func (s *MemoryStore) List(ctx context.Context, kind string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.kinds[kind]
	if !ok {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(b.docs))
	for id, doc := range b.docs {
		records = append(records, Record{ID: strconv.FormatInt(id, 10), Fields: cloneFields(doc)})
	}
	// created_at descending, newest first; id breaks ties deterministically.
	sort.Slice(records, func(i, j int) bool {
		ci, cj := records[i].CreatedAt(), records[j].CreatedAt()
		if ci != cj {
			return ci > cj
		}
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (s *MemoryStore) Get(ctx context.Context, kind, id string) (*Record, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.kinds[kind]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := b.docs[numID]
	if !ok {
		return nil, ErrNotFound
	}
	return &Record{ID: id, Fields: cloneFields(doc)}, nil
}

func (s *MemoryStore) Create(ctx context.Context, kind string, fields Fields) (Record, error) {
	doc := stampCreatedAt(fields, s.now)

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bucket(kind)
	id := b.nextID
	b.nextID++
	b.docs[id] = doc
	return Record{ID: strconv.FormatInt(id, 10), Fields: cloneFields(doc)}, nil
}

func (s *MemoryStore) Update(ctx context.Context, kind, id string, fields Fields) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.kinds[kind]
	if !ok {
		return ErrNotFound
	}
	existing, ok := b.docs[numID]
	if !ok {
		return ErrNotFound
	}
	doc := cloneFields(fields)
	// Writers normally send the whole document back; keep the original stamp
	// if they left created_at out so list ordering stays stable.
	if _, ok := doc[FieldCreatedAt].(string); !ok {
		doc[FieldCreatedAt] = existing[FieldCreatedAt]
	}
	b.docs[numID] = doc
	return nil
}

// Delete is idempotent: removing a record that does not exist is not an error.
func (s *MemoryStore) Delete(ctx context.Context, kind, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.kinds[kind]; ok {
		delete(b.docs, numID)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func cloneFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
