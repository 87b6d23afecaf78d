package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

// pairKey identifies another (user, profile) rating history.
type pairKey struct {
	user    string
	profile string
}

// socialScores finds confirmed neighbors for the target history and
// averages their endorsements of movies the target has not seen, scaled
// to 0..1. The boolean reports whether any neighbor was confirmed; when
// the target's history is below the neighbor threshold the search is
// skipped entirely because low-volume overlap statistics are unreliable.
func (e *Engine) socialScores(all []models.Interaction, history []models.Interaction, user, profile string) (map[normalize.TitleKey]float64, bool) {
	if len(history) < e.cfg.MinRatingsNeighbors {
		return nil, false
	}

	targetScores := make(map[normalize.TitleKey]float64, len(history))
	seen := make(map[normalize.TitleKey]bool, len(history))
	for _, it := range history {
		targetScores[it.Key] = it.Score
		seen[it.Key] = true
	}

	// Count per-pair agreements on shared titles.
	agreements := make(map[pairKey]int)
	for _, it := range all {
		if it.UserID == user && it.Profile == profile {
			continue
		}
		target, shared := targetScores[it.Key]
		if !shared {
			continue
		}
		if math.Abs(target-it.Score) <= e.cfg.MaxScoreDiff {
			agreements[pairKey{it.UserID, it.Profile}]++
		}
	}

	neighbors := make(map[pairKey]bool)
	for pk, count := range agreements {
		if count >= e.cfg.MinCommonMovies {
			neighbors[pk] = true
		}
	}
	if len(neighbors) == 0 {
		return nil, false
	}
	e.log.Debug("confirmed neighbors found",
		zap.String("user_id", user),
		zap.String("profile", profile),
		zap.Int("neighbors", len(neighbors)),
	)

	// Average neighbor endorsements on unseen titles.
	sums := make(map[normalize.TitleKey]float64)
	counts := make(map[normalize.TitleKey]int)
	for _, it := range all {
		if !neighbors[pairKey{it.UserID, it.Profile}] {
			continue
		}
		if seen[it.Key] || it.Score < e.cfg.NeighborLikesMin {
			continue
		}
		sums[it.Key] += it.Score
		counts[it.Key]++
	}

	scores := make(map[normalize.TitleKey]float64, len(sums))
	for key, sum := range sums {
		scores[key] = sum / float64(counts[key]) / 10.0
	}
	return scores, true
}
