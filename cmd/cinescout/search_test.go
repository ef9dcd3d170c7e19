package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/search"
)

// stubSource implements core.MovieSource for testing the UI model.
type stubSource struct {
	genres    []core.Genre
	result    *core.SearchResult
	err       error
	lastQuery core.SearchQuery
}

func (s *stubSource) Search(_ context.Context, q core.SearchQuery) (*core.SearchResult, error) {
	s.lastQuery = q
	return s.result, s.err
}

func (s *stubSource) Genres(_ context.Context) ([]core.Genre, error) {
	return s.genres, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSearchModel(src *stubSource) searchModel {
	session := search.NewSession(testLogger())
	session.LoadGenres(context.Background(), src)
	return newSearchModel(context.Background(), src, session)
}

func TestSearchModel_Init(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	if m.Init() == nil {
		t.Error("Init should return a command (blink + genre load)")
	}
}

func TestSearchModel_InitialState(t *testing.T) {
	m := newTestSearchModel(&stubSource{})

	if m.session.State() != search.StateIdle {
		t.Errorf("state = %v, want idle", m.session.State())
	}
	if m.genreIdx != 0 {
		t.Errorf("genreIdx = %d, want 0", m.genreIdx)
	}
	if m.genreLabel() != "Any" {
		t.Errorf("genreLabel = %q, want %q", m.genreLabel(), "Any")
	}
}

func TestSearchModel_CtrlC(t *testing.T) {
	m := newTestSearchModel(&stubSource{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should return a quit command")
	}
}

func TestSearchModel_SubmitMovesToLoading(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := updated.(searchModel)

	if sm.session.State() != search.StateLoading {
		t.Errorf("state = %v, want loading", sm.session.State())
	}
	if cmd == nil {
		t.Error("enter should return a command to run the search")
	}
	if sm.session.Query().Title != "dune" {
		t.Errorf("query title = %q, want %q", sm.session.Query().Title, "dune")
	}
	if sm.session.Query().Page != 1 {
		t.Errorf("query page = %d, want 1", sm.session.Query().Page)
	}
}

func TestSearchModel_IgnoreEnterWhileLoading(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)
	prev := m.session.Query()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while loading should not start another search")
	}
	if m.session.Query() != prev {
		t.Error("query should be unchanged while loading")
	}
}

func TestSearchModel_ReceiveResults(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)

	result := &core.SearchResult{
		Results: []core.Movie{
			{ID: 1, Title: "Dune", ReleaseDate: "2021-10-22", VoteAverage: 7.8},
		},
		TotalPages: 3,
	}
	updated, _ = m.Update(resultMsg{seq: 1, result: result})
	m = updated.(searchModel)

	if m.session.State() != search.StateSuccess {
		t.Fatalf("state = %v, want success", m.session.State())
	}
	view := m.View()
	if !strings.Contains(view, "Dune") {
		t.Error("view should contain the movie title")
	}
	if !strings.Contains(view, "Page 1 of 3") {
		t.Error("view should contain the page footer")
	}
}

func TestSearchModel_StaleResultDropped(t *testing.T) {
	m := newTestSearchModel(&stubSource{})

	m.textinput.SetValue("first")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)

	// A response tagged with an old sequence number must not apply.
	updated, _ = m.Update(resultMsg{seq: 0, result: &core.SearchResult{TotalPages: 1}})
	m = updated.(searchModel)

	if m.session.State() != search.StateLoading {
		t.Errorf("stale response should leave session loading, got %v", m.session.State())
	}
}

func TestSearchModel_ErrorShowsMessage(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)

	updated, _ = m.Update(resultMsg{seq: 1, err: fmt.Errorf("boom")})
	m = updated.(searchModel)

	if m.session.State() != search.StateError {
		t.Fatalf("state = %v, want error", m.session.State())
	}
	view := m.View()
	if !strings.Contains(view, search.ErrorMessage) {
		t.Error("view should show the generic error message")
	}
	if strings.Contains(view, "boom") {
		t.Error("view should not leak the underlying error")
	}
}

func TestSearchModel_EmptyResults(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("zzzzz")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)

	updated, _ = m.Update(resultMsg{seq: 1, result: &core.SearchResult{Results: []core.Movie{}, TotalPages: 0}})
	m = updated.(searchModel)

	if m.session.State() != search.StateSuccess {
		t.Fatalf("state = %v, want success", m.session.State())
	}
	if !strings.Contains(m.View(), "No movies found.") {
		t.Error("view should show the empty-results message")
	}
}

func TestSearchModel_GenreCycle(t *testing.T) {
	src := &stubSource{genres: []core.Genre{
		{ID: 28, Name: "Action"},
		{ID: 12, Name: "Adventure"},
	}}
	m := newTestSearchModel(src)

	labels := []string{"Action", "Adventure", "Any"}
	for i, want := range labels {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(searchModel)
		if m.genreLabel() != want {
			t.Errorf("tab %d: genreLabel = %q, want %q", i+1, m.genreLabel(), want)
		}
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(searchModel)
	if m.genreLabel() != "Adventure" {
		t.Errorf("shift+tab: genreLabel = %q, want %q", m.genreLabel(), "Adventure")
	}
}

func TestSearchModel_GenreSelectionInQuery(t *testing.T) {
	src := &stubSource{genres: []core.Genre{{ID: 878, Name: "Science Fiction"}}}
	m := newTestSearchModel(src)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(searchModel)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)

	if m.session.Query().GenreID != 878 {
		t.Errorf("query genre = %d, want 878", m.session.Query().GenreID)
	}
}

func TestSearchModel_Paging(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)
	updated, _ = m.Update(resultMsg{seq: 1, result: &core.SearchResult{
		Results:    []core.Movie{{ID: 1, Title: "Dune"}},
		TotalPages: 3,
	}})
	m = updated.(searchModel)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m = updated.(searchModel)

	if cmd == nil {
		t.Error("pgdn should start a search for the next page")
	}
	if m.session.Query().Page != 2 {
		t.Errorf("query page = %d, want 2", m.session.Query().Page)
	}
}

func TestSearchModel_PagingStopsAtBounds(t *testing.T) {
	m := newTestSearchModel(&stubSource{})
	m.textinput.SetValue("dune")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(searchModel)
	updated, _ = m.Update(resultMsg{seq: 1, result: &core.SearchResult{
		Results:    []core.Movie{{ID: 1, Title: "Dune"}},
		TotalPages: 1,
	}})
	m = updated.(searchModel)

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyPgDown}); cmd != nil {
		t.Error("pgdn on the last page should do nothing")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyPgUp}); cmd != nil {
		t.Error("pgup on the first page should do nothing")
	}
}
