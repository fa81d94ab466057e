// Package store holds the in-memory record collections a command works on.
package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/alfurqan/aidctl/internal/pkg/filters"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entity is a record that can be stored, ordered and filtered
type Entity interface {
	filters.Filterable
	RecordID() int
	DisplayName() string
}

// Store is an ordered collection of records of one type.
// Records are kept sorted by lowercased display name using Arabic collation.
type Store[T Entity] struct {
	mu      sync.RWMutex
	records []T
}

// New creates a store populated with records
func New[T Entity](records []T) *Store[T] {
	s := &Store[T]{}
	s.Replace(records)
	return s
}

// Replace swaps the whole collection for a fresh backend snapshot
func (s *Store[T]) Replace(records []T) {
	sorted := slices.Clone(records)
	sortByName(sorted)

	s.mu.Lock()
	s.records = sorted
	s.mu.Unlock()
}

// Upsert inserts rec or replaces the record with the same ID
func (s *Store[T]) Upsert(rec T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.records, func(r T) bool { return r.RecordID() == rec.RecordID() })
	if idx >= 0 {
		s.records[idx] = rec
	} else {
		s.records = append(s.records, rec)
	}
	sortByName(s.records)
}

// Remove deletes the record with id, reporting whether it existed
func (s *Store[T]) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.records)
	s.records = slices.DeleteFunc(s.records, func(r T) bool { return r.RecordID() == id })
	return len(s.records) != before
}

// Find returns the record with id
func (s *Store[T]) Find(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// All returns a copy of every record in store order
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Len returns the number of records
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// View returns the filtered view of the store for reg and query
func (s *Store[T]) View(reg *filters.Registry, query string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filters.Apply(s.records, reg, query)
}

// sortByName orders records by lowercased display name. Equal names keep
// their relative order.
func sortByName[T Entity](records []T) {
	// Collators are not safe for concurrent use
	c := collate.New(language.Arabic)
	slices.SortStableFunc(records, func(a, b T) int {
		return c.CompareString(strings.ToLower(a.DisplayName()), strings.ToLower(b.DisplayName()))
	})
}
