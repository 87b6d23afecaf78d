package engine

import (
	"sort"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

// sample deduplicates candidates by title key, ranks them, and draws a
// randomized selection from the top pool. The random draw keeps repeated
// requests from always surfacing the same top titles; when the pool is
// short it is padded from the ranked remainder, so the result is only
// ever smaller than SampleSize when the whole candidate set is.
func (e *Engine) sample(candidates []models.Candidate) []models.Candidate {
	ranked := Rank(candidates)

	poolSize := e.cfg.PoolSize
	if poolSize > len(ranked) {
		poolSize = len(ranked)
	}
	pool := ranked[:poolSize]
	rest := ranked[poolSize:]

	sampleSize := e.cfg.SampleSize
	if sampleSize >= len(pool) {
		// The whole pool fits; top up from the remainder in rank order.
		result := append([]models.Candidate{}, pool...)
		for _, c := range rest {
			if len(result) >= sampleSize {
				break
			}
			result = append(result, c)
		}
		return result
	}

	e.mu.Lock()
	perm := e.rand.Perm(len(pool))
	e.mu.Unlock()

	result := make([]models.Candidate, 0, sampleSize)
	for _, idx := range perm[:sampleSize] {
		result = append(result, pool[idx])
	}
	return result
}

// Rank sorts candidates by predicted score descending and drops duplicate
// title keys, keeping the highest-scored occurrence. Running it on an
// already ranked, already deduplicated list is a no-op.
func Rank(candidates []models.Candidate) []models.Candidate {
	ranked := append([]models.Candidate{}, candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PredictedScore > ranked[j].PredictedScore
	})

	seen := make(map[normalize.TitleKey]bool, len(ranked))
	out := ranked[:0]
	for _, c := range ranked {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		out = append(out, c)
	}
	return out
}
