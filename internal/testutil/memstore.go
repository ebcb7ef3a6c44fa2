// Package testutil holds in-memory test doubles shared by package tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/ports"
)

// MemStore is an in-memory ports.Store. Calls counts every store method
// invocation so tests can assert a request never reached the store.
type MemStore[T ports.Document] struct {
	mu    sync.Mutex
	docs  map[primitive.ObjectID]T
	order []primitive.ObjectID
	less  func(a, b T) bool

	// Err, when set, is returned by every method.
	Err   error
	Calls int
}

// NewMemStore returns an empty store. List sorts with less, or keeps insertion
// order when less is nil.
func NewMemStore[T ports.Document](less func(a, b T) bool) *MemStore[T] {
	return &MemStore[T]{docs: make(map[primitive.ObjectID]T), less: less}
}

// Seed stores docs directly without counting calls.
func (s *MemStore[T]) Seed(docs ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		id := d.DocumentID()
		if _, ok := s.docs[id]; !ok {
			s.order = append(s.order, id)
		}
		s.docs[id] = d
	}
}

// Len reports how many documents are stored.
func (s *MemStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func (s *MemStore[T]) List(_ context.Context, _ string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	if s.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	}
	return out, nil
}

func (s *MemStore[T]) FindByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *MemStore[T]) Insert(_ context.Context, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return s.Err
	}

	id := (*doc).DocumentID()
	if _, ok := s.docs[id]; ok {
		return domain.ErrDuplicate
	}
	s.docs[id] = *doc
	s.order = append(s.order, id)
	return nil
}

func (s *MemStore[T]) Replace(_ context.Context, id primitive.ObjectID, doc *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	if _, ok := s.docs[id]; !ok {
		return nil, domain.ErrNotFound
	}
	s.docs[id] = *doc
	out := *doc
	return &out, nil
}

func (s *MemStore[T]) Delete(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.docs, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &doc, nil
}

// update applies fn to the stored document under id. The document is left
// unchanged when fn returns an error.
func (s *MemStore[T]) update(id primitive.ObjectID, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return s.Err
	}

	doc, ok := s.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if err := fn(&doc); err != nil {
		return err
	}
	s.docs[id] = doc
	return nil
}

// find returns the first document matching pred.
func (s *MemStore[T]) find(pred func(T) bool) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}

	for _, id := range s.order {
		if doc := s.docs[id]; pred(doc) {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}
