package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/cache"
	"github.com/flicknest/backend/internal/logger"
	"github.com/flicknest/backend/internal/middleware"
	"github.com/flicknest/backend/internal/normalize"
	"github.com/flicknest/backend/internal/util"
)

const (
	randomSampleSize = 2
	searchCacheTTL   = 5 * time.Minute
)

// GetRandomMovies proxies a small random sample from the upstream movies API
// GET /api/v1/movies/random
func (h *Handlers) GetRandomMovies(c *gin.Context) {
	if h.movies == nil {
		util.RespondServiceUnavailable(c, "movies API is not configured")
		return
	}

	docs, err := h.movies.Random(c.Request.Context(), randomSampleSize)
	if err != nil {
		logger.Log.Warn("movies API random fetch failed", zap.Error(err))
		util.RespondBadGateway(c, "movies API unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movies": docs,
		"count":  len(docs),
	})
}

// SearchMovies proxies a title search, deduplicating results that share a
// normalized title, with a short-lived Redis cache in front
// GET /api/v1/movies/search/:query
func (h *Handlers) SearchMovies(c *gin.Context) {
	query := c.Param("query")
	if query == "" {
		util.RespondBadRequest(c, "search query is required")
		return
	}
	if h.movies == nil {
		util.RespondServiceUnavailable(c, "movies API is not configured")
		return
	}

	ctx := c.Request.Context()
	cacheKey := "movies:search:" + string(normalize.Title(query))

	if cached, err := h.redis.Get(ctx, cacheKey); err == nil {
		middleware.RecordCacheHit("movie_search")
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	} else if err != cache.Nil {
		logger.Log.Warn("search cache read failed", zap.Error(err))
	}
	middleware.RecordCacheMiss("movie_search")

	docs, err := h.movies.Search(ctx, query)
	if err != nil {
		logger.Log.Warn("movies API search failed",
			zap.String("query", query),
			zap.Error(err),
		)
		util.RespondBadGateway(c, "movies API unavailable")
		return
	}

	// Collapse re-releases and duplicate listings that share a title.
	seen := make(map[normalize.TitleKey]bool, len(docs))
	unique := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		title, _ := doc["title"].(string)
		key := normalize.Title(title)
		if key != "" && seen[key] {
			continue
		}
		if key != "" {
			seen[key] = true
		}
		unique = append(unique, doc)
	}

	body := gin.H{
		"query":  query,
		"count":  len(unique),
		"movies": unique,
	}

	if payload, err := json.Marshal(body); err == nil {
		if err := h.redis.SetEx(ctx, cacheKey, payload, searchCacheTTL); err != nil {
			logger.Log.Warn("search cache write failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, body)
}
