package engine

import (
	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
	"github.com/flicknest/backend/internal/textsim"
)

// genreScore is the fraction of the user's favorite genres the candidate
// covers; zero when there are no favorites.
func genreScore(movie models.Movie, favorites []string) float64 {
	if len(favorites) == 0 {
		return 0
	}
	candidate := make(map[string]bool)
	for _, g := range normalize.SplitGenres(movie.Genres) {
		candidate[g] = true
	}
	matches := 0
	for _, fav := range favorites {
		if candidate[fav] {
			matches++
		}
	}
	return float64(matches) / float64(len(favorites))
}

// directorScore is 1 when any of the candidate's directors is a favorite.
func directorScore(movie models.Movie, favorites []string) float64 {
	for _, d := range movie.Directors {
		for _, fav := range favorites {
			if d == fav {
				return 1.0
			}
		}
	}
	return 0.0
}

// plotScores computes the corpus-to-candidate plot similarities for all
// candidates at once. A missing or too-short corpus yields all zeros:
// there is not enough signal to score plots from a degenerate vector.
func (e *Engine) plotScores(corpus string, candidates []models.Movie) []float64 {
	if len(corpus) <= e.cfg.MinCorpusChars {
		return make([]float64, len(candidates))
	}
	plots := make([]string, len(candidates))
	for i, m := range candidates {
		plots[i] = m.Plot
	}
	return textsim.Similarities(corpus, plots, e.cfg.MaxFeatures)
}

// qualityScore scales the catalog rating to 0..1, defaulting unknowns.
func (e *Engine) qualityScore(movie models.Movie) float64 {
	q := e.cfg.DefaultQuality
	if movie.Quality != nil {
		q = *movie.Quality
	}
	if q < 0 {
		q = 0
	}
	if q > 10 {
		q = 10
	}
	return q / 10.0
}
