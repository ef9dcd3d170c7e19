package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cinescout/cinescout/internal/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	genres []core.Genre
	err    error
}

func (f *fakeSource) Search(context.Context, core.SearchQuery) (*core.SearchResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeSource) Genres(context.Context) ([]core.Genre, error) {
	return f.genres, f.err
}

func newLoadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(testLogger())
	s.LoadGenres(context.Background(), &fakeSource{genres: []core.Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
	}})
	return s
}

func TestGenreNames(t *testing.T) {
	s := newLoadedSession(t)

	tests := []struct {
		name string
		ids  []int
		want string
	}{
		{"both resolve", []int{28, 12}, "Action, Adventure"},
		{"unknown id yields placeholder", []int{999}, "N/A"},
		{"unknown ids silently drop", []int{28, 999}, "Action"},
		{"empty list yields placeholder", nil, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.GenreNames(tt.ids); got != tt.want {
				t.Errorf("GenreNames(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}

func TestGenreNames_EmptyCache(t *testing.T) {
	s := NewSession(testLogger())
	s.LoadGenres(context.Background(), &fakeSource{err: errors.New("down")})

	if got := s.GenreNames([]int{28}); got != "N/A" {
		t.Errorf("GenreNames with empty cache = %q, want N/A", got)
	}
	// Search stays functional without genres.
	seq := s.Begin(core.SearchQuery{Title: "dune"})
	if !s.Finish(seq, &core.SearchResult{Results: []core.Movie{{Title: "Dune"}}, TotalPages: 1}, nil) {
		t.Error("Finish should apply")
	}
	if s.State() != StateSuccess {
		t.Errorf("state = %v, want success", s.State())
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		name  string
		movie core.Movie
		want  string
	}{
		{"release date", core.Movie{ReleaseDate: "1999-03-31"}, "1999"},
		{"first air date fallback", core.Movie{FirstAirDate: "2008-01-20"}, "2008"},
		{"release date wins", core.Movie{ReleaseDate: "1999-03-31", FirstAirDate: "2008-01-20"}, "1999"},
		{"neither field", core.Movie{}, "N/A"},
		{"truncated date", core.Movie{ReleaseDate: "19"}, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Year(tt.movie); got != tt.want {
				t.Errorf("Year = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRating(t *testing.T) {
	if got := Rating(core.Movie{VoteAverage: 8.43}); got != "8.4" {
		t.Errorf("Rating = %q, want 8.4", got)
	}
	if got := Rating(core.Movie{}); got != "N/A" {
		t.Errorf("Rating = %q, want N/A", got)
	}
}

func TestSession_Cycle(t *testing.T) {
	s := NewSession(testLogger())

	if s.State() != StateIdle {
		t.Fatalf("initial state = %v, want idle", s.State())
	}

	seq := s.Begin(core.SearchQuery{Title: "dune", Page: 0})
	if s.State() != StateLoading {
		t.Errorf("state = %v, want loading", s.State())
	}
	if s.Query().Page != 1 {
		t.Errorf("page = %d, want 1 (clamped)", s.Query().Page)
	}

	applied := s.Finish(seq, &core.SearchResult{
		Results:    []core.Movie{{ID: 1, Title: "Dune"}},
		TotalPages: 4,
	}, nil)
	if !applied {
		t.Fatal("Finish should apply for the latest seq")
	}
	if s.State() != StateSuccess {
		t.Errorf("state = %v, want success", s.State())
	}
	if s.TotalPages() != 4 {
		t.Errorf("total pages = %d, want 4", s.TotalPages())
	}
	if s.NoResults() {
		t.Error("NoResults should be false with one result")
	}
}

func TestSession_Error(t *testing.T) {
	s := NewSession(testLogger())

	seq := s.Begin(core.SearchQuery{Title: "dune"})
	if !s.Finish(seq, nil, errors.New("relay down")) {
		t.Fatal("Finish should apply")
	}
	if !s.Failed() {
		t.Error("Failed should be true")
	}
	if s.NoResults() {
		t.Error("an errored search is not an empty result set")
	}
}

func TestSession_EmptyResultsDistinctFromError(t *testing.T) {
	s := NewSession(testLogger())

	seq := s.Begin(core.SearchQuery{Title: "zzzzz"})
	s.Finish(seq, &core.SearchResult{Results: []core.Movie{}, TotalPages: 0}, nil)

	if !s.NoResults() {
		t.Error("NoResults should be true for an empty successful search")
	}
	if s.Failed() {
		t.Error("empty results must not read as failure")
	}
}

func TestSession_StaleResponseDropped(t *testing.T) {
	s := NewSession(testLogger())

	first := s.Begin(core.SearchQuery{Title: "dune"})
	second := s.Begin(core.SearchQuery{Title: "dune part two"})

	// The newer submission resolves first.
	if !s.Finish(second, &core.SearchResult{Results: []core.Movie{{Title: "Dune: Part Two"}}, TotalPages: 1}, nil) {
		t.Fatal("latest response should apply")
	}

	// The stale response arrives late and must not overwrite.
	if s.Finish(first, &core.SearchResult{Results: []core.Movie{{Title: "Dune"}}, TotalPages: 9}, nil) {
		t.Fatal("stale response must be dropped")
	}
	if s.Results()[0].Title != "Dune: Part Two" {
		t.Errorf("results overwritten by stale response: %+v", s.Results())
	}
	if s.TotalPages() != 1 {
		t.Errorf("total pages overwritten by stale response: %d", s.TotalPages())
	}
}

func TestSession_StaleErrorDropped(t *testing.T) {
	s := NewSession(testLogger())

	first := s.Begin(core.SearchQuery{Title: "a"})
	second := s.Begin(core.SearchQuery{Title: "ab"})

	s.Finish(second, &core.SearchResult{Results: []core.Movie{{Title: "X"}}, TotalPages: 1}, nil)
	if s.Finish(first, nil, errors.New("timeout")) {
		t.Fatal("stale error must be dropped")
	}
	if s.Failed() {
		t.Error("stale error flipped the session into failure")
	}
}
