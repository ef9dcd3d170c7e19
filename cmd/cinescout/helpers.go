package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/metadata/tmdb"
	"github.com/cinescout/cinescout/internal/search"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleTitle = lipgloss.NewStyle().Bold(true)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration file.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// newTMDbClient creates the upstream client, honoring the base URL override.
func newTMDbClient(cfg *config.Config, logger *slog.Logger) *tmdb.Client {
	if cfg.TMDb.BaseURL != "" {
		return tmdb.NewWithBaseURL(cfg.TMDb.APIKey, cfg.TMDb.BaseURL, logger)
	}
	return tmdb.New(cfg.TMDb.APIKey, logger)
}

// newRelayClient creates the relay-side source the frontends search through.
func newRelayClient(cfg *config.Config, logger *slog.Logger) *search.Client {
	return search.NewClient(cfg.Relay.URL, logger)
}

// movieCard renders one result as a terminal card. The poster line is
// omitted entirely when the result has no poster path.
func movieCard(s *search.Session, m core.Movie) string {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(m.DisplayTitle()))
	sb.WriteString(styleDim.Render(fmt.Sprintf(" (%s)", search.Year(m))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s %s  %s %s",
		styleDim.Render("Rating"),
		search.Rating(m),
		styleDim.Render("Genres"),
		s.GenreNames(m.GenreIDs),
	))
	if url := tmdb.PosterURL(m.PosterPath, "w500"); url != "" {
		sb.WriteString("\n  ")
		sb.WriteString(styleDim.Render(url))
	}
	return sb.String()
}
