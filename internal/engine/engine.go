// Package engine implements the hybrid recommendation pipeline: it blends
// community agreement, content affinity, and overall quality into one
// ranked, deduplicated, diversified list of unseen movies for a
// (user, profile) pair. The engine is pure computation over the data it
// is handed; it holds no cross-request state and every derived entity is
// rebuilt per call.
package engine

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

// Mode names the scoring strategy a request ended up with.
type Mode string

const (
	ModeColdStart Mode = "cold_start"
	ModeTaste     Mode = "taste"
	ModeCommunity Mode = "community"
)

// Engine scores and ranks recommendation candidates. Safe for concurrent
// use; the only shared state is the random source, which is locked.
type Engine struct {
	cfg  Config
	log  *zap.Logger
	mu   sync.Mutex
	rand *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for result sampling, letting
// tests assert exact sample membership.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine with the given configuration.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg,
		log:  zap.NewNop(),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Recommend prepares the raw catalog and rating log and scores unseen
// movies for the target (user, profile). An empty catalog or interaction
// log degrades to an empty result or cold-start output, never an error.
func (e *Engine) Recommend(catalog []models.RawMovie, events []models.RawInteraction, user, profile string) ([]models.Candidate, Mode) {
	movies := PrepareCatalog(catalog)
	interactions := PrepareInteractions(events, movies)
	return e.RecommendPrepared(movies, interactions, user, profile)
}

// RecommendPrepared runs the scoring pipeline over already prepared data.
func (e *Engine) RecommendPrepared(movies []models.Movie, interactions []models.Interaction, user, profile string) ([]models.Candidate, Mode) {
	history := make([]models.Interaction, 0)
	seen := make(map[normalize.TitleKey]bool)
	for _, it := range interactions {
		if it.UserID == user && it.Profile == profile {
			history = append(history, it)
			seen[it.Key] = true
		}
	}

	unseen := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if !seen[m.Key] {
			unseen = append(unseen, m)
		}
	}

	if len(history) < e.cfg.MinRatingsPersonalized {
		e.log.Debug("cold start",
			zap.String("user_id", user),
			zap.String("profile", profile),
			zap.Int("ratings", len(history)),
		)
		return e.coldStart(unseen), ModeColdStart
	}

	taste := e.buildProfile(history)
	social, hasNeighbors := e.socialScores(interactions, history, user, profile)
	plots := e.plotScores(taste.PlotCorpus, unseen)
	w := e.cfg.weights(hasNeighbors)

	mode := ModeTaste
	if hasNeighbors {
		mode = ModeCommunity
	}

	candidates := make([]models.Candidate, 0, len(unseen))
	for i, m := range unseen {
		c := models.Candidate{
			Movie:         m,
			ScoreSocial:   social[m.Key],
			ScoreGenre:    genreScore(m, taste.FavoriteGenres),
			ScoreDirector: directorScore(m, taste.FavoriteDirectors),
			ScorePlot:     plots[i],
			ScoreQuality:  e.qualityScore(m),
		}
		c.PredictedScore = e.blend(c.ScoreSocial, c.ScoreGenre, c.ScoreDirector, c.ScorePlot, c.ScoreQuality, w)
		c.MatchReason = e.matchReason(c.ScoreSocial, c.ScoreGenre, c.ScoreDirector, c.ScorePlot, hasNeighbors)
		sanitize(&c)
		candidates = append(candidates, c)
	}

	e.log.Debug("scored candidates",
		zap.String("user_id", user),
		zap.String("profile", profile),
		zap.String("mode", string(mode)),
		zap.Int("candidates", len(candidates)),
		zap.Strings("favorite_genres", taste.FavoriteGenres),
	)
	return e.sample(candidates), mode
}

// coldStart ranks purely on catalog quality.
func (e *Engine) coldStart(unseen []models.Movie) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(unseen))
	for _, m := range unseen {
		c := models.Candidate{
			Movie:        m,
			ScoreQuality: e.qualityScore(m),
			MatchReason:  ReasonGlobalTrend,
		}
		c.PredictedScore = c.ScoreQuality
		sanitize(&c)
		candidates = append(candidates, c)
	}
	return e.sample(candidates)
}

// sanitize replaces NaN and infinities before the candidate leaves the
// engine; nothing non-finite may reach the wire.
func sanitize(c *models.Candidate) {
	for _, f := range []*float64{
		&c.ScoreSocial, &c.ScoreGenre, &c.ScoreDirector,
		&c.ScorePlot, &c.ScoreQuality, &c.PredictedScore,
	} {
		if math.IsNaN(*f) || math.IsInf(*f, 0) {
			*f = 0
		}
	}
}
