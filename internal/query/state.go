// Package query holds the user's search and category selection.
package query

import (
	"fmt"
	"strings"

	"github.com/starford/torii/internal/apperr"
)

// Filter is the active category control.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterBuddhist Filter = "buddhist"
	FilterShinto   Filter = "shinto"
	FilterFamous   Filter = "famous"
)

// Filters lists the controls in display order.
var Filters = []Filter{FilterAll, FilterBuddhist, FilterShinto, FilterFamous}

// ParseFilter converts a control tag to a Filter. The empty string selects
// FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperr.ErrInvalidFilter, s)
}

// State is the current search term and filter. It is a value: the With
// methods return a modified copy and never touch the receiver.
type State struct {
	SearchTerm   string `json:"search_term"`
	ActiveFilter Filter `json:"active_filter"`
}

// New returns the startup state: empty search, all categories.
func New() State {
	return State{ActiveFilter: FilterAll}
}

// WithSearch returns a copy with the search term set to the lowercased text.
func (s State) WithSearch(text string) State {
	s.SearchTerm = strings.ToLower(text)
	return s
}

// WithFilter returns a copy with the active filter replaced.
func (s State) WithFilter(f Filter) State {
	s.ActiveFilter = f
	return s
}
