package view

import "github.com/starford/torii/internal/models"

// Synchronizer rebuilds the map, list and count from a list of matching
// records.
//
// Every Reconcile tears down all markers and list entries it created before
// and builds new ones. Cost is linear in the number of records per call,
// which is fine for a city-sized dataset; large datasets would need an
// incremental strategy, which would also change marker identity between
// calls.
type Synchronizer struct {
	mapw   MapWidget
	list   ListView
	count  CountLabel
	detail DetailView

	placed []MarkerHandle
}

// NewSynchronizer wires a synchronizer to its displays.
func NewSynchronizer(m MapWidget, l ListView, c CountLabel, d DetailView) *Synchronizer {
	return &Synchronizer{mapw: m, list: l, count: c, detail: d}
}

// Reconcile makes the displays show exactly the given records, in order.
func (s *Synchronizer) Reconcile(matching []models.Temple) {
	for _, h := range s.placed {
		s.mapw.RemoveMarker(h)
	}
	s.placed = s.placed[:0]
	s.list.Clear()

	for _, t := range matching {
		open := s.opener(t)
		h := s.mapw.PlaceMarker(Marker{
			TempleID: t.ID,
			Title:    t.Name,
			Position: t.Coordinates,
			Style:    StyleFor(t),
		}, open)
		s.placed = append(s.placed, h)
		s.list.Append(ListEntry{
			TempleID:   t.ID,
			Name:       t.Name,
			NativeName: t.NativeName,
			Address:    t.Address,
			Type:       t.Type,
			OnActivate: open,
		})
	}

	s.count.SetCount(len(matching))
}

// ShowDetail opens the detail view for t.
func (s *Synchronizer) ShowDetail(t models.Temple) {
	s.detail.Show(t)
}

func (s *Synchronizer) opener(t models.Temple) func() {
	return func() { s.detail.Show(t) }
}
