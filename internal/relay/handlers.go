package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cinescout/cinescout/internal/core"
)

// errFetchMessage is the generic failure payload. Upstream detail is logged
// for operators but never sent back to the caller.
const errFetchMessage = "Failed to fetch data"

// Handler serves the movie search and genre list endpoints.
type Handler struct {
	source core.MovieSource
	logger *slog.Logger
}

// NewHandler creates the relay API handler.
func NewHandler(source core.MovieSource, logger *slog.Logger) *Handler {
	if source == nil {
		panic("relay.NewHandler: source must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{source: source, logger: logger}
}

// Test handles GET /api/test.
func (h *Handler) Test(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CineScout relay is running"})
}

// Movies handles GET /api/movies?genreId=&title=&page=.
//
// A non-empty title routes to the upstream search endpoint and the genre
// filter is ignored (the title-search endpoint has no genre parameter).
// Otherwise the discover endpoint is used with the genre filter when present.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	q := core.SearchQuery{
		Title:   r.URL.Query().Get("title"),
		GenreID: intParam(r, "genreId", 0),
		Page:    intParam(r, "page", 1),
	}

	result, err := h.source.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("movie search failed",
			slog.String("title", q.Title),
			slog.Int("genre_id", q.GenreID),
			slog.Int("page", q.Page),
			slog.String("error", err.Error()),
		)
		writeError(w)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Genres handles GET /api/genres, returning the raw ordered genre list.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.source.Genres(r.Context())
	if err != nil {
		h.logger.Error("genre list failed", slog.String("error", err.Error()))
		writeError(w)
		return
	}

	writeJSON(w, http.StatusOK, genres)
}

// intParam reads a string-encoded integer query parameter, falling back to
// def when absent or unparsable. No further validation: the upstream API is
// the authority on what makes a valid page or genre id.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": errFetchMessage})
}
