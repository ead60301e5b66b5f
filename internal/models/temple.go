// Package models defines the domain types for Torii.
package models

// TempleType is the religious tradition of a site.
type TempleType string

const (
	TypeBuddhist TempleType = "buddhist"
	TypeShinto   TempleType = "shinto"
)

// Category is the grouping a site is listed under. It is independent of
// TempleType: a Buddhist temple may be listed as famous.
type Category string

const (
	CategoryFamous   Category = "famous"
	CategoryBuddhist Category = "buddhist"
	CategoryShinto   Category = "shinto"
)

// Coordinates is a WGS84 position in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Temple is one temple or shrine record. Records are immutable once loaded.
type Temple struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	NativeName  string      `json:"native_name" yaml:"native_name"`
	Type        TempleType  `json:"type" yaml:"type"`
	Category    Category    `json:"category" yaml:"category"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Address     string      `json:"address" yaml:"address"`
	Description string      `json:"description" yaml:"description"`
	History     string      `json:"history" yaml:"history"`
	BestTime    string      `json:"best_time" yaml:"best_time"`
	Highlights  []string    `json:"highlights" yaml:"highlights"`
}
