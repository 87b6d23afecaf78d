package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/engine"
	"github.com/flicknest/backend/internal/logger"
	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/tracking"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type fakeStore struct {
	catalog      []models.RawMovie
	interactions []models.RawInteraction
	err          error
}

func (f *fakeStore) FetchCatalog(ctx context.Context) ([]models.RawMovie, error) {
	return f.catalog, f.err
}

func (f *fakeStore) FetchInteractions(ctx context.Context) ([]models.RawInteraction, error) {
	return f.interactions, f.err
}

type fakeMoviesAPI struct {
	random []map[string]interface{}
	search []map[string]interface{}
	err    error
}

func (f *fakeMoviesAPI) Random(ctx context.Context, count int) ([]map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.random, nil
}

func (f *fakeMoviesAPI) Search(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func newTestHandlers(t *testing.T, store *fakeStore) *Handlers {
	t.Helper()
	eng := engine.New(engine.DefaultConfig(), engine.WithRand(rand.New(rand.NewSource(1))))
	h := NewHandlers(store, eng)

	tracker, err := tracking.Open(filepath.Join(t.TempDir(), "tracking.db"), zap.NewNop())
	require.NoError(t, err)
	h.SetTracker(tracker)
	return h
}

func catalogFixture() []models.RawMovie {
	rating := func(v float64) models.RawImdb { return models.RawImdb{Rating: v} }
	return []models.RawMovie{
		{Title: "Heat", Genres: "Crime, Thriller", Plot: "A heist crew and a detective circle each other", Directors: []string{"Michael Mann"}, Imdb: rating(8.3)},
		{Title: "Ronin", Genres: "Action, Thriller", Plot: "Mercenaries chase a briefcase across France", Directors: []string{"John Frankenheimer"}, Imdb: rating(7.2)},
		{Title: "Clueless", Genres: "Comedy", Plot: "A rich teenager plays matchmaker in Beverly Hills", Directors: []string{"Amy Heckerling"}, Imdb: rating(6.9)},
	}
}

func performRequest(h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func testRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/health", h.Health)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/recommendations", h.GetRecommendations)
		v1.POST("/recommendations/click", h.TrackRecommendationClick)
		v1.GET("/recommendations/ctr", h.GetCTRMetrics)
		v1.GET("/movies/random", h.GetRandomMovies)
		v1.GET("/movies/search/:query", h.SearchMovies)
	}
	return r
}

func TestHealth(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	w := performRequest(testRouter(h), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetRecommendationsRequiresParams(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{catalog: catalogFixture()})
	r := testRouter(h)

	for _, path := range []string{
		"/api/v1/recommendations",
		"/api/v1/recommendations?email=a@b.com",
		"/api/v1/recommendations?profile_name=main",
	} {
		w := performRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestGetRecommendationsEmptyCatalog(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	w := performRequest(testRouter(h), http.MethodGet,
		"/api/v1/recommendations?email=a@b.com&profile_name=main", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetRecommendationsStoreError(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{err: errors.New("mongo down")})
	w := performRequest(testRouter(h), http.MethodGet,
		"/api/v1/recommendations?email=a@b.com&profile_name=main", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRecommendationsColdStart(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{catalog: catalogFixture()})
	w := performRequest(testRouter(h), http.MethodGet,
		"/api/v1/recommendations?email=newcomer@b.com&profile_name=main", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendations []models.Candidate `json:"recommendations"`
		Meta            struct {
			Mode  string `json:"mode"`
			Count int    `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "cold_start", resp.Meta.Mode)
	assert.Len(t, resp.Recommendations, 3)
	assert.Equal(t, resp.Meta.Count, len(resp.Recommendations))
	// Quality ranking puts the best-rated title first.
	assert.Equal(t, "Heat", resp.Recommendations[0].Title)
	assert.Equal(t, "Global trend", resp.Recommendations[0].MatchReason)
}

func TestTrackRecommendationClick(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	r := testRouter(h)

	w := performRequest(r, http.MethodPost, "/api/v1/recommendations/click",
		`{"email":"a@b.com","profile_name":"main","movie_id":"m1","source":"taste"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "click_tracked")

	w = performRequest(r, http.MethodPost, "/api/v1/recommendations/click", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCTRMetrics(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	r := testRouter(h)

	w := performRequest(r, http.MethodGet, "/api/v1/recommendations/ctr", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"period":"24h"`)

	w = performRequest(r, http.MethodGet, "/api/v1/recommendations/ctr?period=1y", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRandomMovies(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	h.SetMoviesClient(&fakeMoviesAPI{random: []map[string]interface{}{
		{"title": "Heat"},
		{"title": "Ronin"},
	}})

	w := performRequest(testRouter(h), http.MethodGet, "/api/v1/movies/random", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestGetRandomMoviesUpstreamDown(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	h.SetMoviesClient(&fakeMoviesAPI{err: errors.New("connection refused")})

	w := performRequest(testRouter(h), http.MethodGet, "/api/v1/movies/random", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetRandomMoviesNotConfigured(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	w := performRequest(testRouter(h), http.MethodGet, "/api/v1/movies/random", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSearchMoviesDeduplicates(t *testing.T) {
	h := newTestHandlers(t, &fakeStore{})
	h.SetMoviesClient(&fakeMoviesAPI{search: []map[string]interface{}{
		{"title": "Heat", "year": 1995},
		{"title": "  heat ", "year": 2013},
		{"title": "Heat of the Night"},
	}})

	w := performRequest(testRouter(h), http.MethodGet, "/api/v1/movies/search/heat", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Query  string                   `json:"query"`
		Count  int                      `json:"count"`
		Movies []map[string]interface{} `json:"movies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "heat", resp.Query)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Heat", resp.Movies[0]["title"])
	assert.Equal(t, "Heat of the Night", resp.Movies[1]["title"])
}
