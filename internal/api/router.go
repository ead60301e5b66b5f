package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/torii/internal/templeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *templeservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/temples", h.SearchTemples)
	r.Get("/temples/{id}", h.GetTemple)
	r.Get("/searches/popular", h.PopularSearches)
	r.Get("/searches/unmatched", h.UnmatchedSearches)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
