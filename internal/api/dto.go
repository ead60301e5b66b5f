package api

import (
	"github.com/starford/torii/internal/models"
	"github.com/starford/torii/internal/querylog"
	"github.com/starford/torii/internal/templeservice"
)

// SearchResponse is the reconciled display for a query (aliased from the service layer).
type SearchResponse = templeservice.Results

// TempleDetail is the full record shown in the detail overlay.
type TempleDetail = models.Temple

// PopularResponse wraps the most submitted search terms.
type PopularResponse struct {
	Terms []querylog.TermCount `json:"terms" validate:"required"`
}

// UnmatchedResponse lists recent search terms with no results.
type UnmatchedResponse struct {
	Terms []string `json:"terms" validate:"required"`
}
