package tmdb

import "github.com/cinescout/cinescout/internal/core"

// pageResponse is the TMDb paginated envelope shared by the search and
// discover endpoints.
type pageResponse struct {
	Page         int          `json:"page"`
	Results      []core.Movie `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// genreListResponse wraps the /genre/movie/list endpoint response.
type genreListResponse struct {
	Genres []core.Genre `json:"genres"`
}
