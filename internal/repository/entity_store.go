package repository

import (
	"errors"
	"sync"
)

var (
	ErrNotFound         = errors.New("entity not found")
	ErrMutationInFlight = errors.New("another change to this entity is still in progress")
)

type entry[T any] struct {
	item     T
	version  uint64
	inFlight bool
	hidden   bool
}

// EntityStore is the in-memory working copy of entities fetched from the
// bridge. It keeps first-seen order, a version stamp per entity and an
// in-flight flag that fences concurrent mutations of the same entity.
type EntityStore[T any] struct {
	mu      sync.Mutex
	idOf    func(T) string
	order   []string
	entries map[string]*entry[T]
}

func NewEntityStore[T any](idOf func(T) string) *EntityStore[T] {
	return &EntityStore[T]{
		idOf:    idOf,
		entries: make(map[string]*entry[T]),
	}
}

// Merge upserts items fetched from the bridge and returns the store's view
// of them, in the given order. Entities with a mutation in flight keep
// their optimistic value.
func (s *EntityStore[T]) Merge(items []T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(items))
	for _, item := range items {
		id := s.idOf(item)
		if id == "" {
			out = append(out, item)
			continue
		}
		e, ok := s.entries[id]
		if !ok {
			s.entries[id] = &entry[T]{item: item}
			s.order = append(s.order, id)
			out = append(out, item)
			continue
		}
		if e.inFlight {
			if !e.hidden {
				out = append(out, e.item)
			}
			continue
		}
		e.item = item
		e.hidden = false
		out = append(out, item)
	}
	return out
}

func (s *EntityStore[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idOf(item)
	if id == "" {
		return
	}
	if e, ok := s.entries[id]; ok {
		e.item = item
		e.hidden = false
		return
	}
	s.entries[id] = &entry[T]{item: item}
	s.order = append(s.order, id)
}

func (s *EntityStore[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.hidden {
		var zero T
		return zero, false
	}
	return e.item, true
}

func (s *EntityStore[T]) Version(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		return e.version
	}
	return 0
}

// All returns visible entities in first-seen order.
func (s *EntityStore[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if e := s.entries[id]; !e.hidden {
			out = append(out, e.item)
		}
	}
	return out
}

// Begin claims the entity for a mutation and returns its current value as
// the rollback snapshot.
func (s *EntityStore[T]) Begin(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.entries[id]
	if !ok || e.hidden && !e.inFlight {
		return zero, ErrNotFound
	}
	if e.inFlight {
		return zero, ErrMutationInFlight
	}
	e.inFlight = true
	return e.item, nil
}

// Apply stores the optimistic value of an in-flight entity.
func (s *EntityStore[T]) Apply(id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok && e.inFlight {
		e.item = item
	}
}

// Hide makes an in-flight entity invisible, for optimistic deletes.
func (s *EntityStore[T]) Hide(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok && e.inFlight {
		e.hidden = true
	}
}

// Commit stores the confirmed value, bumps the version and releases the
// entity.
func (s *EntityStore[T]) Commit(id string, item T) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return 0
	}
	e.item = item
	e.hidden = false
	e.inFlight = false
	e.version++
	return e.version
}

// Rollback restores the snapshot taken by Begin and releases the entity.
func (s *EntityStore[T]) Rollback(id string, snapshot T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.item = snapshot
		e.hidden = false
		e.inFlight = false
	}
}

// Delete drops a claimed entity for good.
func (s *EntityStore[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
