package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/httpclient"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	genreCacheTTL  = 15 * time.Minute
	imageBaseURL   = "https://image.tmdb.org/t/p/"
)

// Client is a TMDb API v3 client. It implements core.MovieSource.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	genres  *genreCache
	logger  *slog.Logger
}

var _ core.MovieSource = (*Client)(nil)

// New creates a new TMDb client.
func New(apiKey string, logger *slog.Logger) *Client {
	return NewWithBaseURL(apiKey, defaultBaseURL, logger)
}

// NewWithBaseURL creates a TMDb client against a non-default base URL.
func NewWithBaseURL(apiKey, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpclient.New(httpclient.DefaultConfig(), logger),
		genres:  newGenreCache(genreCacheTTL),
		logger:  logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests (e.g. internal/relay).
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  "test-key",
		http:    httpclient.New(httpclient.DefaultConfig(), logger),
		genres:  newGenreCache(genreCacheTTL),
		logger:  logger,
	}
}

// Search runs one paginated query against TMDb. A non-empty title selects
// the search endpoint with query=<title>; the genre filter is dropped there
// because /search/movie has no genre parameter. Without a title the discover
// endpoint is used, filtered by genre when one is set.
//
// Search results are never cached: one user action, one upstream call.
func (c *Client) Search(ctx context.Context, q core.SearchQuery) (*core.SearchResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	params := url.Values{"page": {strconv.Itoa(page)}}

	path := "/discover/movie"
	if q.Title != "" {
		path = "/search/movie"
		params.Set("query", q.Title)
	} else if q.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	}

	var resp pageResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	result := &core.SearchResult{
		Results:    resp.Results,
		TotalPages: resp.TotalPages,
	}
	if result.Results == nil {
		result.Results = []core.Movie{}
	}
	return result, nil
}

// Genres returns the ordered movie genre list. Genres are immutable upstream,
// so the list is cached for the client's lifetime with a lazy TTL refresh.
func (c *Client) Genres(ctx context.Context) ([]core.Genre, error) {
	if cached, ok := c.genres.Get(); ok {
		return cached, nil
	}

	var resp genreListResponse
	if err := c.get(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	c.genres.Set(resp.Genres)
	return resp.Genres, nil
}

// PosterURL returns the full URL for a poster path.
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + size + posterPath
}

// get performs an authenticated GET request to the TMDb API and decodes the
// JSON response. The credential, language, and adult filter ride on every call.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("include_adult", "false")
	q.Set("language", "en-US")
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tmdb API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
