// Package core defines the domain types and interfaces shared by the relay
// service and the search frontends.
package core

import "context"

// Movie is a single result from the metadata provider. All fields are
// optional upstream; missing values degrade to placeholders at render time.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"` // TV results carry "name" instead of "title"
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
}

// DisplayTitle returns the movie title, falling back to the TV name.
func (m Movie) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "N/A"
}

// Genre is a single entry from the provider's genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchQuery carries the filter parameters for one search submission.
// Zero values mean "absent"; Page below 1 is treated as 1.
type SearchQuery struct {
	Title   string
	GenreID int
	Page    int
}

// SearchResult is the envelope returned for every search: the full result
// page plus the total page count. It is rebuilt on each submission, never
// merged across pages.
type SearchResult struct {
	Results    []Movie `json:"results"`
	TotalPages int     `json:"total_pages"`
}

// MovieSource is anything that can answer search queries and list genres:
// the TMDb client directly, or the relay client from a frontend's side.
type MovieSource interface {
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
	Genres(ctx context.Context) ([]Genre, error)
}

// Frontend is a user-facing surface (terminal UI, Telegram bot).
type Frontend interface {
	// Start runs the frontend until ctx is canceled.
	Start(ctx context.Context) error

	// Name returns the frontend name (e.g. "telegram").
	Name() string
}
