package engine

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

func newTestEngine(cfg Config) *Engine {
	return New(cfg, WithRand(rand.New(rand.NewSource(1))))
}

func event(user, profile, title string, score interface{}) models.RawInteraction {
	return models.RawInteraction{
		UserID:     user,
		Profile:    profile,
		MovieTitle: title,
		Score:      score,
		Timestamp:  time.Now(),
	}
}

func TestRecommendColdStartScenario(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	catalog := []models.RawMovie{
		rawMovie("First", 9.0, "Drama"),
		rawMovie("Second", 7.0, "Comedy"),
		rawMovie("Third", 5.0, "Horror"),
	}

	out, mode := e.Recommend(catalog, nil, "new@example.com", "main")

	assert.Equal(t, ModeColdStart, mode)
	require.Len(t, out, 3)
	assert.Equal(t, "First", out[0].Title)
	assert.InDelta(t, 0.9, out[0].PredictedScore, 1e-9)
	assert.InDelta(t, 0.7, out[1].PredictedScore, 1e-9)
	assert.InDelta(t, 0.5, out[2].PredictedScore, 1e-9)
	for _, c := range out {
		assert.Equal(t, ReasonGlobalTrend, c.MatchReason)
		assert.Equal(t, c.ScoreQuality, c.PredictedScore)
	}
}

func TestRecommendColdStartBelowPersonalizationThreshold(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	catalog := []models.RawMovie{
		rawMovie("Seen One", 8.0, "Drama"),
		rawMovie("Unseen", 6.0, "Drama"),
	}
	events := make([]models.RawInteraction, 0, 9)
	for i := 0; i < 9; i++ {
		events = append(events, event("ana@example.com", "main", "Seen One", 8))
	}

	out, mode := e.Recommend(catalog, events, "ana@example.com", "main")

	assert.Equal(t, ModeColdStart, mode)
	// The single seen movie is excluded even in cold start.
	require.Len(t, out, 1)
	assert.Equal(t, "Unseen", out[0].Title)
}

func TestRecommendWarmTasteModeScenario(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	catalog := []models.RawMovie{
		rawMovie("Drama Candidate", 8.0, "Drama"),
		rawMovie("Comedy Candidate", 8.0, "Comedy"),
	}
	for i := 0; i < 12; i++ {
		catalog = append(catalog, rawMovie(fmt.Sprintf("seen-%d", i), 7.0, "Drama"))
	}

	// Twelve ratings, three liked dramas: warm, personalized, but far
	// below the neighbor threshold.
	events := make([]models.RawInteraction, 0, 12)
	for i := 0; i < 12; i++ {
		score := 5
		if i < 3 {
			score = 8
		}
		events = append(events, event("ana@example.com", "main", fmt.Sprintf("seen-%d", i), score))
	}

	out, mode := e.Recommend(catalog, events, "ana@example.com", "main")

	assert.Equal(t, ModeTaste, mode)
	require.Len(t, out, 2)

	byTitle := map[string]models.Candidate{}
	for _, c := range out {
		byTitle[c.Title] = c
		assert.Zero(t, c.ScoreSocial)
	}

	drama := byTitle["Drama Candidate"]
	comedy := byTitle["Comedy Candidate"]
	assert.Greater(t, drama.ScoreGenre, 0.0)
	assert.Zero(t, comedy.ScoreGenre)
	assert.Greater(t, drama.PredictedScore, comedy.PredictedScore)

	// Taste mode blends only content and quality.
	cfg := e.Config()
	content := drama.ScoreGenre*cfg.GenreWeight + drama.ScoreDirector*cfg.DirectorWeight + drama.ScorePlot*cfg.PlotWeight
	want := content*cfg.TasteContentWeight + drama.ScoreQuality*cfg.TasteQualityWeight
	assert.InDelta(t, want, drama.PredictedScore, 1e-9)
}

func TestRecommendCommunityModeWithPlantedTwin(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	catalog := []models.RawMovie{rawMovie("Hidden Gem", 7.0, "Drama")}
	for i := 0; i < 30; i++ {
		catalog = append(catalog, rawMovie(fmt.Sprintf("seen-%d", i), 7.0, "Drama"))
	}

	events := make([]models.RawInteraction, 0, 40)
	for i := 0; i < 30; i++ {
		events = append(events, event("ana@example.com", "main", fmt.Sprintf("seen-%d", i), 7))
	}
	for i := 0; i < 6; i++ {
		events = append(events, event("twin@example.com", "main", fmt.Sprintf("seen-%d", i), 7))
	}
	events = append(events, event("twin@example.com", "main", "Hidden Gem", 9))

	out, mode := e.Recommend(catalog, events, "ana@example.com", "main")

	assert.Equal(t, ModeCommunity, mode)
	require.Len(t, out, 1)
	assert.Equal(t, "Hidden Gem", out[0].Title)
	assert.InDelta(t, 0.9, out[0].ScoreSocial, 1e-9)
	assert.Equal(t, ReasonCommunity, out[0].MatchReason)
}

func TestRecommendShortCorpusZeroesPlotScores(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	longPlot := "a meticulous detective obsessively hunts an elusive serial killer through rain soaked city streets"
	catalog := []models.RawMovie{}
	for i := 0; i < 12; i++ {
		m := rawMovie(fmt.Sprintf("seen-%d", i), 7.0, "Drama")
		if i < 2 {
			m.Plot = "detective hunts" // corpus stays under the minimum length
		}
		catalog = append(catalog, m)
	}
	cand := rawMovie("Candidate", 7.0, "Drama")
	cand.Plot = longPlot
	catalog = append(catalog, cand)

	events := make([]models.RawInteraction, 0, 12)
	for i := 0; i < 12; i++ {
		events = append(events, event("ana@example.com", "main", fmt.Sprintf("seen-%d", i), 9))
	}

	out, _ := e.Recommend(catalog, events, "ana@example.com", "main")

	require.Len(t, out, 1)
	assert.Zero(t, out[0].ScorePlot)
}

func TestRecommendScoresAreFiniteAndBounded(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	catalog := make([]models.RawMovie, 0, 60)
	for i := 0; i < 60; i++ {
		catalog = append(catalog, rawMovie(fmt.Sprintf("movie-%d", i), float64(i%11), "Drama", "Action"))
	}
	events := make([]models.RawInteraction, 0, 80)
	for i := 0; i < 40; i++ {
		events = append(events, event("ana@example.com", "main", fmt.Sprintf("movie-%d", i), float64(i%10)+1))
	}
	for i := 0; i < 40; i++ {
		events = append(events, event("other@example.com", "main", fmt.Sprintf("movie-%d", i), float64(i%10)+1))
	}

	out, _ := e.Recommend(catalog, events, "ana@example.com", "main")

	require.NotEmpty(t, out)
	seen := make(map[normalize.TitleKey]bool)
	for _, c := range out {
		assert.False(t, math.IsNaN(c.PredictedScore))
		assert.False(t, math.IsInf(c.PredictedScore, 0))
		assert.GreaterOrEqual(t, c.PredictedScore, 0.0)
		assert.LessOrEqual(t, c.PredictedScore, 1.0)
		assert.False(t, seen[c.Key], "duplicate normalized title in response")
		seen[c.Key] = true
	}
}

func TestRecommendEmptyCatalogReturnsEmpty(t *testing.T) {
	e := newTestEngine(DefaultConfig())

	out, mode := e.Recommend(nil, nil, "ana@example.com", "main")
	assert.Empty(t, out)
	assert.Equal(t, ModeColdStart, mode)
}
