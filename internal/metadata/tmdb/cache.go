package tmdb

import (
	"sync"
	"time"

	"github.com/cinescout/cinescout/internal/core"
)

// genreCache holds the genre list with a TTL. Unlike search results, which
// must be fetched fresh per submission, the genre taxonomy changes on the
// order of years, so one cached copy serves the whole session.
type genreCache struct {
	mu        sync.RWMutex
	genres    []core.Genre
	expiresAt time.Time
	ttl       time.Duration
}

func newGenreCache(ttl time.Duration) *genreCache {
	return &genreCache{ttl: ttl}
}

func (c *genreCache) Get() ([]core.Genre, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.genres == nil || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.genres, true
}

func (c *genreCache) Set(genres []core.Genre) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.genres = genres
	c.expiresAt = time.Now().Add(c.ttl)
}
