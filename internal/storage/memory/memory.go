// Package memory provides an in-process Store for tests and for
// running without a database file. State is lost on exit.
package memory

import (
	"context"
	"sync"

	"github.com/babburibeiro/WebAppCashUp/internal/storage"
)

type collection struct {
	order []string
	docs  map[string][]byte
}

// Store keeps collections in maps with insertion order preserved, so
// List behaves like the SQLite implementation.
type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
	singletons  map[string][]byte
}

func New() *Store {
	return &Store{
		collections: make(map[string]*collection),
		singletons:  make(map[string][]byte),
	}
}

func (s *Store) List(_ context.Context, name string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, nil
	}
	out := make([][]byte, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.docs[id]))
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, name, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(doc), nil
}

func (s *Store) Put(_ context.Context, name, id string, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string][]byte)}
		s.collections[name] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = clone(record)
	return nil
}

func (s *Store) Remove(_ context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return nil
	}
	if _, exists := c.docs[id]; !exists {
		return nil
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetSingleton(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.singletons[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(doc), nil
}

func (s *Store) PutSingleton(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.singletons[key] = clone(value)
	return nil
}

func (s *Store) Close() error {
	return nil
}

// clone keeps callers from sharing byte slices with the store.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
