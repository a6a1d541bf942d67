// Package memstore provides an in-memory docstore.Store used by tests and
// local development.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/agora/backend/internal/docstore"
)

// Store keeps collections in process memory. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return docstore.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return docstore.NewDocument(id, copyFields(fields)), nil
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var docs []docstore.Document
	for _, id := range ids {
		fields := s.collections[collection][id]
		if q.Field != "" && !matches(fields[q.Field], q.Equals) {
			continue
		}
		docs = append(docs, docstore.NewDocument(id, copyFields(fields)))
		if q.Limit > 0 && len(docs) >= q.Limit {
			break
		}
	}
	return docs, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = copyFields(fields)
	return nil
}

func matches(value, want interface{}) bool {
	if ref, ok := want.(docstore.Ref); ok {
		got, ok := value.(docstore.Ref)
		return ok && got == ref
	}
	return value == want
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

var _ docstore.Store = (*Store)(nil)
