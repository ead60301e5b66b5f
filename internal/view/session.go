package view

import (
	"github.com/starford/torii/internal/filter"
	"github.com/starford/torii/internal/metrics"
	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/records"
)

// StoreSource yields the current record store.
type StoreSource interface {
	Load() *records.Store
}

// Session drives a Synchronizer from user input. It keeps no query state of
// its own: callers build the state with query.State's WithSearch and
// WithFilter and pass it in, and every handler runs filter and reconcile
// before returning.
type Session struct {
	src  StoreSource
	sync *Synchronizer
}

// NewSession creates a session over the given store source and displays.
func NewSession(src StoreSource, sync *Synchronizer) *Session {
	return &Session{src: src, sync: sync}
}

// Refresh reconciles the displays against st and returns the matching
// records. It handles a search or filter change and a dataset reload alike.
func (s *Session) Refresh(st query.State) []models.Temple {
	matching := filter.Apply(s.src.Load().All(), st)
	s.sync.Reconcile(matching)
	metrics.ObserveReconcile(string(st.ActiveFilter), len(matching))
	return matching
}

// Activate opens the detail view for the record with the given id.
func (s *Session) Activate(id int) error {
	t, err := s.src.Load().Get(id)
	if err != nil {
		return err
	}
	s.sync.ShowDetail(t)
	return nil
}

// NewSnapshotSession returns a session rendering into a fresh Snapshot.
func NewSnapshotSession(src StoreSource) (*Session, *Snapshot) {
	snap := NewSnapshot()
	return NewSession(src, NewSynchronizer(snap, snap, snap, snap)), snap
}
