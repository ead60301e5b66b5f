// Package records holds the immutable temple record store and its loaders.
package records

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	"github.com/starford/torii/internal/apperr"
	"github.com/starford/torii/internal/models"
)

// Store is an ordered, read-only set of temple records. Insertion order is
// the canonical display order.
type Store struct {
	temples  []models.Temple
	byID     map[int]int
	checksum string
}

// NewStore builds a store from already validated records. The slice is
// copied; later changes by the caller are not visible.
func NewStore(temples []models.Temple) *Store {
	s := &Store{
		temples: make([]models.Temple, len(temples)),
		byID:    make(map[int]int, len(temples)),
	}
	copy(s.temples, temples)
	for i, t := range s.temples {
		s.byID[t.ID] = i
	}
	return s
}

// Empty returns a store with no records.
func Empty() *Store {
	return NewStore(nil)
}

// All returns the records in display order. Callers must not modify the result.
func (s *Store) All() []models.Temple {
	return s.temples
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.temples)
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (models.Temple, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Temple{}, apperr.ErrNotFound
	}
	return s.temples[i], nil
}

// Checksum returns the hex SHA-256 of the source the store was loaded from,
// or an empty string for stores built in memory.
func (s *Store) Checksum() string {
	return s.checksum
}

// Holder publishes the current store to concurrent readers. A reload
// replaces the whole store; a store is never mutated in place.
type Holder struct {
	p atomic.Pointer[Store]
}

// NewHolder returns a holder initialised with s (or an empty store if nil).
func NewHolder(s *Store) *Holder {
	h := &Holder{}
	h.Swap(s)
	return h
}

// Load returns the current store.
func (h *Holder) Load() *Store {
	return h.p.Load()
}

// Swap installs s and returns the previous store.
func (h *Holder) Swap(s *Store) *Store {
	if s == nil {
		s = Empty()
	}
	return h.p.Swap(s)
}

func sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
