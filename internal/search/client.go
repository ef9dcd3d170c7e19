package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/httpclient"
)

// Client talks to the relay service from the frontend side. It implements
// core.MovieSource over /api/movies and /api/genres.
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  *slog.Logger
}

var _ core.MovieSource = (*Client)(nil)

// ErrRelay is returned for any relay failure. The relay already collapses
// upstream causes into a generic body, so there is nothing finer to report.
var ErrRelay = errors.New("relay request failed")

// NewClient creates a relay client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(httpclient.DefaultConfig(), logger),
		logger:  logger,
	}
}

// Search calls GET /api/movies with the query's filter parameters.
func (c *Client) Search(ctx context.Context, q core.SearchQuery) (*core.SearchResult, error) {
	params := url.Values{}
	if q.Title != "" {
		params.Set("title", q.Title)
	}
	if q.GenreID > 0 {
		params.Set("genreId", strconv.Itoa(q.GenreID))
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	var result core.SearchResult
	if err := c.get(ctx, "/api/movies", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Genres calls GET /api/genres.
func (c *Client) Genres(ctx context.Context) ([]core.Genre, error) {
	var genres []core.Genre
	if err := c.get(ctx, "/api/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("relay unreachable", slog.String("error", err.Error()))
		return ErrRelay
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("relay returned failure", slog.Int("status", resp.StatusCode))
		return ErrRelay
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.logger.Debug("relay response malformed", slog.String("error", err.Error()))
		return ErrRelay
	}
	return nil
}
