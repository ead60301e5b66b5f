package web

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/starford/torii/internal/api"
	"github.com/starford/torii/internal/apperr"
	"github.com/starford/torii/internal/templeservice"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the HTML page, its fragments and static assets.
type Handler struct {
	svc      *templeservice.Service
	settings MapSettings
}

// NewHandler creates a new Handler.
func NewHandler(svc *templeservice.Service, settings MapSettings) *Handler {
	return &Handler{svc: svc, settings: settings}
}

// Routes mounts the page, fragment and static routes on r.
func (h *Handler) Routes(r chi.Router) {
	static, _ := fs.Sub(staticFiles, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Get("/", h.Index)
	r.Get("/fragments/results", h.ResultsFragment)
	r.Get("/fragments/temples/{id}", h.DetailFragment)
}

// Index handles GET /. The q and filter parameters preselect the view.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	st, err := api.StateFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := h.svc.Search(r.Context(), st, templeservice.SourceHTML)
	templ.Handler(Page(res, r.URL.Query().Get("q"), h.settings)).ServeHTTP(w, r)
}

// ResultsFragment handles GET /fragments/results.
func (h *Handler) ResultsFragment(w http.ResponseWriter, r *http.Request) {
	st, err := api.StateFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := h.svc.Search(r.Context(), st, templeservice.SourceHTML)
	templ.Handler(Results(res)).ServeHTTP(w, r)
}

// DetailFragment handles GET /fragments/temples/{id}.
func (h *Handler) DetailFragment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "id must be an integer", http.StatusBadRequest)
		return
	}
	t, err := h.svc.Temple(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		slog.Error("detail fragment failed", slog.Int("id", id), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	templ.Handler(Detail(t)).ServeHTTP(w, r)
}
