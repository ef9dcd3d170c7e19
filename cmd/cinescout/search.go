package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/search"
)

// newSearchCmd returns the "search" subcommand for the interactive terminal UI.
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search",
		Short: "Start the interactive search UI",
		Long: "Start the interactive movie search UI.\n" +
			"Type a title and press Enter; Tab cycles the genre filter,\n" +
			"PgUp/PgDn page through results, Esc quits.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSearch()
		},
	}
}

// runSearch initializes the relay client and starts the Bubble Tea UI.
func runSearch() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	source := newRelayClient(cfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(newSearchModel(ctx, source, search.NewSession(logger)))

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run search: %w", err)
	}
	return nil
}

// genresMsg signals that the session finished loading the genre list.
type genresMsg struct{}

// resultMsg carries one search outcome back to the UI, tagged with the
// submission sequence so stale responses can be dropped.
type resultMsg struct {
	seq    uint64
	result *core.SearchResult
	err    error
}

// searchModel is the Bubble Tea model for the search UI.
type searchModel struct {
	ctx       context.Context
	source    core.MovieSource
	session   *search.Session
	textinput textinput.Model
	spinner   spinner.Model
	genreIdx  int // 0 = any genre, otherwise 1-based index into the genre list
	width     int
}

// newSearchModel creates a searchModel with text input and spinner.
func newSearchModel(ctx context.Context, source core.MovieSource, session *search.Session) searchModel {
	ti := textinput.New()
	ti.Placeholder = "Movie title (empty to browse by genre)"
	ti.Focus()
	ti.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo

	return searchModel{
		ctx:       ctx,
		source:    source,
		session:   session,
		textinput: ti,
		spinner:   s,
	}
}

// Init starts the cursor blink and fetches the genre list once.
func (m searchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadGenres())
}

// Update handles incoming messages and user input.
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		model, cmd, handled := m.handleKey(msg)
		if handled {
			return model, cmd
		}

	case genresMsg:
		return m, nil

	case resultMsg:
		m.session.Finish(msg.seq, msg.result, msg.err)
		return m, nil

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading() {
		var tiCmd tea.Cmd
		m.textinput, tiCmd = m.textinput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m searchModel) loading() bool {
	return m.session.State() == search.StateLoading
}

// handleKey dispatches key events. Submission keys are ignored while a
// search is in flight; the sequence guard in the session catches anything
// that slips through.
func (m *searchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return *m, tea.Quit, true

	case "tab", "shift+tab":
		if m.loading() {
			return *m, nil, true
		}
		m.cycleGenre(msg.String() == "tab")
		return *m, nil, true

	case "enter":
		if m.loading() {
			return *m, nil, true
		}
		return *m, m.submit(1), true

	case "pgdown":
		return m.page(1)

	case "pgup":
		return m.page(-1)
	}
	return *m, nil, false
}

// cycleGenre moves the genre selection forward or backward, wrapping through
// "any genre" at index 0.
func (m *searchModel) cycleGenre(forward bool) {
	n := len(m.session.Genres()) + 1
	if n == 1 {
		return
	}
	if forward {
		m.genreIdx = (m.genreIdx + 1) % n
	} else {
		m.genreIdx = (m.genreIdx - 1 + n) % n
	}
}

// page flips to an adjacent result page when one exists.
func (m *searchModel) page(delta int) (tea.Model, tea.Cmd, bool) {
	if m.loading() || m.session.State() != search.StateSuccess {
		return *m, nil, true
	}
	next := m.session.Query().Page + delta
	if next < 1 || next > m.session.TotalPages() {
		return *m, nil, true
	}
	return *m, m.submit(next), true
}

// submit begins a new search and returns the command that runs it.
func (m *searchModel) submit(page int) tea.Cmd {
	q := core.SearchQuery{
		Title:   strings.TrimSpace(m.textinput.Value()),
		GenreID: m.selectedGenreID(),
		Page:    page,
	}
	seq := m.session.Begin(q)

	run := func() tea.Msg {
		result, err := m.source.Search(m.ctx, q)
		return resultMsg{seq: seq, result: result, err: err}
	}
	return tea.Batch(m.spinner.Tick, run)
}

func (m searchModel) selectedGenreID() int {
	genres := m.session.Genres()
	if m.genreIdx == 0 || m.genreIdx > len(genres) {
		return 0
	}
	return genres[m.genreIdx-1].ID
}

func (m searchModel) genreLabel() string {
	genres := m.session.Genres()
	if m.genreIdx == 0 || m.genreIdx > len(genres) {
		return "Any"
	}
	return genres[m.genreIdx-1].Name
}

// loadGenres fetches the genre list once at mount. Failure leaves the list
// empty; searching still works.
func (m searchModel) loadGenres() tea.Cmd {
	return func() tea.Msg {
		m.session.LoadGenres(m.ctx, m.source)
		return genresMsg{}
	}
}

// View renders the form, the status line, and the current result page.
func (m searchModel) View() string {
	var sb strings.Builder

	sb.WriteString(styleHeader.Render("CineScout"))
	sb.WriteString("\n")
	sb.WriteString(m.textinput.View())
	sb.WriteString("\n")
	sb.WriteString(styleDim.Render("Genre: "))
	sb.WriteString(m.genreLabel())
	sb.WriteString(styleDim.Render("  (tab to change, enter to search)"))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewBody())
	sb.WriteString("\n")
	return sb.String()
}

// viewBody renders the portion below the form for the current state.
func (m searchModel) viewBody() string {
	switch m.session.State() {
	case search.StateLoading:
		return m.spinner.View() + styleDim.Render(" Searching...")

	case search.StateError:
		return styleError.Render(search.ErrorMessage)

	case search.StateSuccess:
		if m.session.NoResults() {
			return styleDim.Render("No movies found.")
		}
		return m.viewResults()

	default:
		return styleDim.Render("Type a title and press Enter.")
	}
}

func (m searchModel) viewResults() string {
	results := m.session.Results()
	cards := make([]string, 0, len(results)+1)
	for _, movie := range results {
		cards = append(cards, movieCard(m.session, movie))
	}
	cards = append(cards, styleDim.Render(fmt.Sprintf(
		"Page %d of %d  (pgup/pgdn to page)",
		m.session.Query().Page, m.session.TotalPages(),
	)))
	return strings.Join(cards, "\n\n")
}
