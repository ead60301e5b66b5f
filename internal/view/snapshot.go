package view

import "github.com/starford/torii/internal/models"

type placedMarker struct {
	handle   int
	marker   Marker
	activate func()
}

// Snapshot is an in-memory MapWidget, ListView, CountLabel and DetailView.
// It records what a browser would display, so the HTTP, HTML and MCP
// surfaces can serialise it. A Snapshot is not safe for concurrent use.
type Snapshot struct {
	nextHandle int
	markers    []placedMarker
	items      []ListEntry
	count      int
	detail     *models.Temple
}

// NewSnapshot returns an empty display.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// PlaceMarker implements MapWidget.
func (s *Snapshot) PlaceMarker(m Marker, onActivate func()) MarkerHandle {
	s.nextHandle++
	s.markers = append(s.markers, placedMarker{handle: s.nextHandle, marker: m, activate: onActivate})
	return s.nextHandle
}

// RemoveMarker implements MapWidget. Unknown handles are ignored.
func (s *Snapshot) RemoveMarker(h MarkerHandle) {
	id, ok := h.(int)
	if !ok {
		return
	}
	for i, pm := range s.markers {
		if pm.handle == id {
			s.markers = append(s.markers[:i], s.markers[i+1:]...)
			return
		}
	}
}

// Clear implements ListView.
func (s *Snapshot) Clear() {
	s.items = s.items[:0]
}

// Append implements ListView.
func (s *Snapshot) Append(e ListEntry) {
	s.items = append(s.items, e)
}

// SetCount implements CountLabel.
func (s *Snapshot) SetCount(n int) {
	s.count = n
}

// Show implements DetailView.
func (s *Snapshot) Show(t models.Temple) {
	s.detail = &t
}

// Dismiss implements DetailView.
func (s *Snapshot) Dismiss() {
	s.detail = nil
}

// Markers returns the visible markers in placement order.
func (s *Snapshot) Markers() []Marker {
	out := make([]Marker, len(s.markers))
	for i, pm := range s.markers {
		out[i] = pm.marker
	}
	return out
}

// Items returns the visible list entries in order.
func (s *Snapshot) Items() []ListEntry {
	out := make([]ListEntry, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number shown on the count label.
func (s *Snapshot) Count() int {
	return s.count
}

// CountLabel returns the count label text.
func (s *Snapshot) CountLabel() string {
	return CountText(s.count)
}

// Detail returns the record shown in the detail overlay, if any.
func (s *Snapshot) Detail() (models.Temple, bool) {
	if s.detail == nil {
		return models.Temple{}, false
	}
	return *s.detail, true
}

// ActivateItem simulates a click on the i-th list entry.
func (s *Snapshot) ActivateItem(i int) bool {
	if i < 0 || i >= len(s.items) || s.items[i].OnActivate == nil {
		return false
	}
	s.items[i].OnActivate()
	return true
}

// ActivateMarker simulates a click on the marker for a temple id.
func (s *Snapshot) ActivateMarker(templeID int) bool {
	for _, pm := range s.markers {
		if pm.marker.TempleID == templeID && pm.activate != nil {
			pm.activate()
			return true
		}
	}
	return false
}
