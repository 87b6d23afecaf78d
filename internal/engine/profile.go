package engine

import (
	"strings"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

// buildProfile derives the user's taste profile from their joined history.
// A user with no liked interactions gets an empty but valid profile, which
// simply zeroes the content scores downstream.
func (e *Engine) buildProfile(history []models.Interaction) models.TasteProfile {
	var genreTokens []string
	var directorTokens []string
	var plots []string

	for _, it := range history {
		if it.Score >= e.cfg.LikedMin {
			genreTokens = append(genreTokens, normalize.SplitGenres(it.Genres)...)
			directorTokens = append(directorTokens, it.Directors...)
		}
		if it.Score >= e.cfg.LovedMin && it.Plot != "" {
			plots = append(plots, it.Plot)
		}
	}

	return models.TasteProfile{
		FavoriteGenres:    topByCount(genreTokens, e.cfg.TopGenres),
		FavoriteDirectors: topByCount(directorTokens, e.cfg.TopDirectors),
		PlotCorpus:        strings.Join(plots, " "),
	}
}
