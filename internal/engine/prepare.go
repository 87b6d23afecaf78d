package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/flicknest/backend/internal/models"
	"github.com/flicknest/backend/internal/normalize"
)

// PrepareCatalog derives Movie entities from raw catalog documents,
// deduplicating on the normalized title (first occurrence wins). Records
// without a usable title are dropped since they can never join.
func PrepareCatalog(raw []models.RawMovie) []models.Movie {
	movies := make([]models.Movie, 0, len(raw))
	seen := make(map[normalize.TitleKey]bool, len(raw))

	for _, rm := range raw {
		key := normalize.Title(rm.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		movie := models.Movie{
			ID:        movieID(rm),
			Title:     strings.TrimSpace(rm.Title),
			Key:       key,
			Genres:    normalize.FormatGenres(rm.Genres),
			Plot:      rm.Plot,
			Directors: rm.Directors,
			Poster:    rm.Poster,
			Cast:      rm.Cast,
			Writers:   rm.Writers,
			Year:      intFromAny(rm.Year),
			Runtime:   intFromAny(rm.Runtime),
		}
		if q, ok := normalize.ParseRating(rm.Imdb.Rating); ok {
			movie.Quality = &q
		}
		movies = append(movies, movie)
	}
	return movies
}

// PrepareInteractions joins raw rating events against the prepared catalog
// on the normalized title, drops events without a catalog match or a
// parseable score, and keeps at most one row per (user, profile, title) —
// the most recent by timestamp, first seen on ties.
func PrepareInteractions(events []models.RawInteraction, catalog []models.Movie) []models.Interaction {
	byKey := make(map[normalize.TitleKey]*models.Movie, len(catalog))
	for i := range catalog {
		byKey[catalog[i].Key] = &catalog[i]
	}

	type dedupKey struct {
		user    string
		profile string
		title   normalize.TitleKey
	}
	best := make(map[dedupKey]int)
	interactions := make([]models.Interaction, 0, len(events))

	for _, ev := range events {
		key := normalize.Title(ev.MovieTitle)
		movie, ok := byKey[key]
		if !ok {
			continue
		}
		score, ok := normalize.ParseRating(ev.Score)
		if !ok {
			continue
		}

		row := models.Interaction{
			UserID:    ev.UserID,
			Profile:   ev.Profile,
			Key:       key,
			Title:     movie.Title,
			Score:     score,
			Timestamp: ev.Timestamp,
			Genres:    movie.Genres,
			Plot:      movie.Plot,
			Directors: movie.Directors,
			Quality:   movie.Quality,
		}

		dk := dedupKey{ev.UserID, ev.Profile, key}
		if idx, exists := best[dk]; exists {
			if row.Timestamp.After(interactions[idx].Timestamp) {
				interactions[idx] = row
			}
			continue
		}
		best[dk] = len(interactions)
		interactions = append(interactions, row)
	}
	return interactions
}

// topByCount returns the limit most frequent items, preserving
// first-encountered order among equal counts.
func topByCount(items []string, limit int) []string {
	counts := make(map[string]int)
	order := make(map[string]int)
	uniq := make([]string, 0)
	for i, item := range items {
		if _, ok := counts[item]; !ok {
			order[item] = i
			uniq = append(uniq, item)
		}
		counts[item]++
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		if counts[uniq[i]] != counts[uniq[j]] {
			return counts[uniq[i]] > counts[uniq[j]]
		}
		return order[uniq[i]] < order[uniq[j]]
	})
	if len(uniq) > limit {
		uniq = uniq[:limit]
	}
	return uniq
}

func movieID(rm models.RawMovie) string {
	if !rm.ID.IsZero() {
		return rm.ID.Hex()
	}
	return string(normalize.Title(rm.Title))
}

// intFromAny coerces the loosely typed year/runtime fields; anything
// unusable collapses to zero.
func intFromAny(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
