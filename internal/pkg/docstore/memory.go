package docstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps collections in process memory. It backs the test suite
// and the development seed.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[Path]*memCollection
	newID       func() string
}

type memCollection struct {
	docs  map[string]map[string]any
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[Path]*memCollection),
		newID: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

func (s *MemoryStore) collection(path Path, create bool) *memCollection {
	c, ok := s.collections[path]
	if !ok && create {
		c = &memCollection{docs: make(map[string]map[string]any)}
		s.collections[path] = c
	}
	return c
}

// List returns matching documents in insertion order unless q orders them.
func (s *MemoryStore) List(ctx context.Context, path Path, q Query) ([]Document, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collection(path, false)
	if c == nil {
		return []Document{}, nil
	}

	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		data := c.docs[id]
		if !matches(data, q.Where) {
			continue
		}
		out = append(out, Document{ID: id, Data: cloneMap(data)})
	}

	sortDocuments(out, q)
	return out, nil
}

func matches(data map[string]any, where []Filter) bool {
	for _, f := range where {
		v, ok := data[f.Field]
		if !ok || !valuesEqual(v, f.Value) {
			return false
		}
	}
	return true
}

// Get returns a copy of one document.
func (s *MemoryStore) Get(ctx context.Context, path Path, id string) (Document, error) {
	if err := checkArgs(path, id); err != nil {
		return Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collection(path, false)
	if c == nil {
		return Document{}, ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: cloneMap(data)}, nil
}

// Create stores a copy of data under a fresh id. Ids are never reused.
func (s *MemoryStore) Create(ctx context.Context, path Path, data map[string]any) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(path, true)
	id := s.newID()
	c.docs[id] = cloneMap(data)
	c.order = append(c.order, id)
	return id, nil
}

// Update merges fields into the stored document.
func (s *MemoryStore) Update(ctx context.Context, path Path, id string, fields map[string]any) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(path, false)
	if c == nil {
		return ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		data[k] = cloneValue(v)
	}
	return nil
}

// Delete removes a document. Sub-collections below it are left untouched.
func (s *MemoryStore) Delete(ctx context.Context, path Path, id string) error {
	if err := checkArgs(path, id); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(path, false)
	if c == nil {
		return ErrNotFound
	}
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
