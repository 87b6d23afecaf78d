package handlers

import (
	"context"

	"github.com/flicknest/backend/internal/cache"
	"github.com/flicknest/backend/internal/engine"
	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/tracking"
)

// CatalogSource provides the raw movie catalog and rating log. Satisfied
// by store.Store; tests substitute fixtures.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]models.RawMovie, error)
	FetchInteractions(ctx context.Context) ([]models.RawInteraction, error)
}

// MoviesAPI is the upstream movies service this API proxies for random
// picks and title search.
type MoviesAPI interface {
	Random(ctx context.Context, count int) ([]map[string]interface{}, error)
	Search(ctx context.Context, query string) ([]map[string]interface{}, error)
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	store   CatalogSource
	engine  *engine.Engine
	tracker *tracking.Tracker
	redis   *cache.RedisClient
	movies  MoviesAPI
}

// NewHandlers creates a new handlers instance
func NewHandlers(store CatalogSource, eng *engine.Engine) *Handlers {
	return &Handlers{
		store:  store,
		engine: eng,
	}
}

// SetTracker sets the impression/click tracker
func (h *Handlers) SetTracker(tracker *tracking.Tracker) {
	h.tracker = tracker
}

// SetRedisClient sets the Redis client used for search caching
func (h *Handlers) SetRedisClient(redis *cache.RedisClient) {
	h.redis = redis
}

// SetMoviesClient sets the upstream movies API client
func (h *Handlers) SetMoviesClient(movies MoviesAPI) {
	h.movies = movies
}
