// Package search holds the frontend-agnostic search session: the
// idle/loading/success/error cycle, the per-session genre cache, and the
// display helpers the frontends render results with.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cinescout/cinescout/internal/core"
)

// ErrorMessage is the fixed text shown for any failed search. The cause is
// logged, not surfaced: "upstream down" and "network broken" look the same
// to the user.
const ErrorMessage = "Failed to fetch movies. Please try again."

// State is the session's position in the submission cycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// Session is one user's search state. Genres are populated once and live for
// the session; everything else is rebuilt per submission. A monotonically
// increasing sequence number guards against a stale in-flight response
// overwriting a newer one.
type Session struct {
	mu         sync.Mutex
	genres     []core.Genre
	genreNames map[int]string
	state      State
	query      core.SearchQuery
	results    []core.Movie
	totalPages int
	seq        uint64
	logger     *slog.Logger
}

// NewSession creates an idle session.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		genreNames: make(map[int]string),
		logger:     logger,
	}
}

// LoadGenres fetches the genre list once from the source. On failure the
// list stays empty and searching remains functional, just without resolved
// genre names.
func (s *Session) LoadGenres(ctx context.Context, source core.MovieSource) {
	genres, err := source.Genres(ctx)
	if err != nil {
		s.logger.Warn("genre list unavailable", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.genres = genres
	s.genreNames = make(map[int]string, len(genres))
	for _, g := range genres {
		s.genreNames[g.ID] = g.Name
	}
}

// Genres returns the cached genre list in upstream order.
func (s *Session) Genres() []core.Genre {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genres
}

// Begin records a new submission and returns its sequence number. The
// session transitions to loading.
func (s *Session) Begin(q core.SearchQuery) uint64 {
	if q.Page < 1 {
		q.Page = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = StateLoading
	s.query = q
	return s.seq
}

// Finish applies the outcome of the submission identified by seq. A response
// for anything but the latest submission is dropped; the return value reports
// whether the session state changed.
func (s *Session) Finish(seq uint64, result *core.SearchResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("dropping stale search response",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", s.seq),
		)
		return false
	}

	if err != nil {
		s.state = StateError
		s.results = nil
		s.totalPages = 0
		return true
	}

	s.state = StateSuccess
	s.results = result.Results
	s.totalPages = result.TotalPages
	return true
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the most recently submitted query.
func (s *Session) Query() core.SearchQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Results returns the current result page.
func (s *Session) Results() []core.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// TotalPages returns the page count from the last successful search.
func (s *Session) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

// NoResults reports a successful search that matched nothing. This is a
// separate condition from Failed even though frontends render both as a
// plain banner.
func (s *Session) NoResults() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateSuccess && len(s.results) == 0
}

// Failed reports whether the last search errored.
func (s *Session) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateError
}

// GenreNames resolves genre ids against the session's cached list. Unknown
// ids are dropped from the joined string; when nothing resolves the
// placeholder "N/A" is returned.
func (s *Session) GenreNames(ids []int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := s.genreNames[id]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}

// Year extracts the display year from whichever release field is present.
func Year(m core.Movie) string {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if len(date) < 4 {
		return "N/A"
	}
	return date[:4]
}

// Rating formats the vote average, degrading to a placeholder when absent.
func Rating(m core.Movie) string {
	if m.VoteAverage == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", m.VoteAverage)
}
