// Package filter selects the temple records matching a query state.
package filter

import (
	"strings"

	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/query"
)

// Apply returns the records matching both the search term and the active
// filter, in their original order. It never modifies records.
func Apply(records []models.Temple, st query.State) []models.Temple {
	term := strings.ToLower(st.SearchTerm)
	out := make([]models.Temple, 0, len(records))
	for _, r := range records {
		if MatchesSearch(r, term) && MatchesFilter(r, st.ActiveFilter) {
			out = append(out, r)
		}
	}
	return out
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// record's name, native name or description. An empty term matches.
func MatchesSearch(r models.Temple, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.NativeName), term) ||
		strings.Contains(strings.ToLower(r.Description), term)
}

// MatchesFilter reports whether f selects r. A tag matches either the
// record's type or its category, so "buddhist" selects type=buddhist as well
// as category=buddhist.
func MatchesFilter(r models.Temple, f query.Filter) bool {
	switch f {
	case query.FilterAll, "":
		return true
	}
	return string(f) == string(r.Type) || string(f) == string(r.Category)
}
