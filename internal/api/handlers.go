package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/torii/internal/apperr"
	"github.com/starford/torii/internal/query"
	"github.com/starford/torii/internal/templeservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *templeservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *templeservice.Service) *Handler {
	return &Handler{svc: svc}
}

// StateFromRequest builds the query state from the q and filter parameters.
func StateFromRequest(r *http.Request) (query.State, error) {
	q := r.URL.Query()
	f, err := query.ParseFilter(q.Get("filter"))
	if err != nil {
		return query.State{}, err
	}
	return query.New().WithSearch(q.Get("q")).WithFilter(f), nil
}

// SearchTemples handles GET /api/temples.
//
//	@Summary		Search and filter temples
//	@Tags			temples
//	@Produce		json
//	@Param			q		query		string	false	"Case-insensitive substring of name, native name or description"
//	@Param			filter	query		string	false	"Category filter"	Enums(all, buddhist, shinto, famous)
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/temples [get]
func (h *Handler) SearchTemples(w http.ResponseWriter, r *http.Request) {
	st, err := StateFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Search(r.Context(), st, templeservice.SourceHTTP))
}

// GetTemple handles GET /api/temples/{id}.
//
//	@Summary		Get the full record of a temple
//	@Tags			temples
//	@Produce		json
//	@Param			id	path		int	true	"Temple id"
//	@Success		200	{object}	TempleDetail
//	@Failure		400	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/temples/{id} [get]
func (h *Handler) GetTemple(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("id must be an integer"))
		return
	}
	t, err := h.svc.Temple(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get temple failed", slog.Int("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// PopularSearches handles GET /api/searches/popular.
//
//	@Summary		Most submitted search terms
//	@Tags			searches
//	@Produce		json
//	@Param			limit	query		int	false	"Max terms"
//	@Success		200		{object}	PopularResponse
//	@Security		BearerAuth
//	@Router			/searches/popular [get]
func (h *Handler) PopularSearches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	terms, err := h.svc.Popular(r.Context(), limit)
	if err != nil {
		slog.Error("popular searches failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, PopularResponse{Terms: terms})
}

// UnmatchedSearches handles GET /api/searches/unmatched.
//
//	@Summary		Recent search terms that matched no temple
//	@Tags			searches
//	@Produce		json
//	@Param			limit	query		int	false	"Max terms"
//	@Success		200		{object}	UnmatchedResponse
//	@Security		BearerAuth
//	@Router			/searches/unmatched [get]
func (h *Handler) UnmatchedSearches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	terms, err := h.svc.Unmatched(r.Context(), limit)
	if err != nil {
		slog.Error("unmatched searches failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, UnmatchedResponse{Terms: terms})
}
