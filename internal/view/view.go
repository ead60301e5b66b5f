// Package view keeps the map markers, result list and count label in step
// with the set of matching temple records.
package view

import (
	"fmt"

	"github.com/starford/torii/internal/models"
)

// MarkerStyle selects the marker icon on the map.
type MarkerStyle string

const (
	StyleBuddhist MarkerStyle = "buddhist"
	StyleShinto   MarkerStyle = "shinto"
)

// StyleFor returns the marker style used for a record.
func StyleFor(t models.Temple) MarkerStyle {
	if t.Type == models.TypeShinto {
		return StyleShinto
	}
	return StyleBuddhist
}

// Marker describes a point to place on the map.
type Marker struct {
	TempleID int                `json:"id"`
	Title    string             `json:"title"`
	Position models.Coordinates `json:"position"`
	Style    MarkerStyle        `json:"style"`
}

// MarkerHandle identifies a placed marker. Its meaning is private to the
// MapWidget that returned it.
type MarkerHandle any

// MapWidget is the map the markers are drawn on.
type MapWidget interface {
	PlaceMarker(m Marker, onActivate func()) MarkerHandle
	RemoveMarker(h MarkerHandle)
}

// ListEntry is the summary line shown for one record in the result list.
type ListEntry struct {
	TempleID   int               `json:"id"`
	Name       string            `json:"name"`
	NativeName string            `json:"native_name"`
	Address    string            `json:"address"`
	Type       models.TempleType `json:"type"`
	OnActivate func()            `json:"-"`
}

// ListView is the ordered result list.
type ListView interface {
	Clear()
	Append(e ListEntry)
}

// CountLabel displays the number of matching records.
type CountLabel interface {
	SetCount(n int)
}

// DetailView shows every field of a single record in an overlay.
type DetailView interface {
	Show(t models.Temple)
	Dismiss()
}

// CountText formats the count label.
func CountText(n int) string {
	return fmt.Sprintf("%d temples", n)
}
