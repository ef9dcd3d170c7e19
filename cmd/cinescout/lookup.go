package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinescout/cinescout/internal/config"
	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/search"
)

// newLookupCmd returns the "lookup" subcommand for one-shot searches.
func newLookupCmd() *cobra.Command {
	var (
		genreID int
		page    int
	)

	cmd := &cobra.Command{
		Use:   "lookup [title...]",
		Short: "Run a one-shot movie search and print the results",
		Long: "Run a single search against the relay and print the result page.\n" +
			"With no title the search browses by genre, or lists popular movies\n" +
			"when no genre is given either.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, strings.Join(args, " "), genreID, page)
		},
	}

	cmd.Flags().IntVarP(&genreID, "genre", "g", 0, "genre ID to filter by (ignored when a title is given)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "result page to fetch")
	return cmd
}

func runLookup(cmd *cobra.Command, title string, genreID, page int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	source := newRelayClient(cfg, logger)
	session := search.NewSession(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session.LoadGenres(ctx, source)

	q := core.SearchQuery{Title: title, GenreID: genreID, Page: page}
	seq := session.Begin(q)
	result, err := source.Search(ctx, q)
	session.Finish(seq, result, err)

	if session.Failed() {
		return fmt.Errorf("%s", search.ErrorMessage)
	}
	if session.NoResults() {
		fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("No movies found."))
		return nil
	}

	out := cmd.OutOrStdout()
	cards := make([]string, 0, len(session.Results()))
	for _, movie := range session.Results() {
		cards = append(cards, movieCard(session, movie))
	}
	fmt.Fprintln(out, strings.Join(cards, "\n\n"))
	fmt.Fprintln(out, styleDim.Render(fmt.Sprintf("Page %d of %d", session.Query().Page, session.TotalPages())))
	return nil
}
