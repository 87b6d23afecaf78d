package engine

// Config collects every threshold and weight the scoring pipeline uses.
// It is passed by value and never mutated, so each mode's weight split can
// be exercised on its own in tests.
type Config struct {
	// Mode selection.
	MinRatingsPersonalized int // below this the user is cold started
	MinRatingsNeighbors    int // below this neighbor search is skipped

	// Neighbor agreement.
	MinCommonMovies  int     // shared movies needed to confirm a neighbor
	MaxScoreDiff     float64 // |target - neighbor| tolerance per shared movie
	NeighborLikesMin float64 // neighbor rating that counts as an endorsement

	// Taste profile.
	LikedMin       float64 // rating that feeds genre/director frequencies
	LovedMin       float64 // rating whose plot joins the corpus
	TopGenres      int
	TopDirectors   int
	MinCorpusChars int // plot corpus shorter than this scores zero

	// Content blend.
	GenreWeight    float64
	DirectorWeight float64
	PlotWeight     float64
	MaxFeatures    int // TF-IDF vocabulary cap

	// Final blend, community mode (confirmed neighbors exist).
	CommunitySocialWeight  float64
	CommunityContentWeight float64
	CommunityQualityWeight float64

	// Final blend, taste mode (no confirmed neighbors).
	TasteContentWeight float64
	TasteQualityWeight float64

	// Match-reason thresholds, checked in priority order.
	SocialReasonMin float64
	PlotReasonMin   float64
	GenreReasonMin  float64

	// Result shaping.
	DefaultQuality float64 // stands in for an unknown catalog rating
	PoolSize       int     // top-ranked pool the sample is drawn from
	SampleSize     int     // final response size
}

// DefaultConfig returns the deployed configuration. Community weights sum
// to 1 and taste weights sum to 1, which keeps predicted scores in [0, 1].
func DefaultConfig() Config {
	return Config{
		MinRatingsPersonalized: 10,
		MinRatingsNeighbors:    30,

		MinCommonMovies:  5,
		MaxScoreDiff:     1.0,
		NeighborLikesMin: 6.0,

		LikedMin:       7.0,
		LovedMin:       8.0,
		TopGenres:      5,
		TopDirectors:   3,
		MinCorpusChars: 50,

		GenreWeight:    0.3,
		DirectorWeight: 0.2,
		PlotWeight:     0.5,
		MaxFeatures:    2000,

		CommunitySocialWeight:  0.4,
		CommunityContentWeight: 0.4,
		CommunityQualityWeight: 0.2,

		TasteContentWeight: 0.7,
		TasteQualityWeight: 0.3,

		SocialReasonMin: 0.7,
		PlotReasonMin:   0.2,
		GenreReasonMin:  0.5,

		DefaultQuality: 5.0,
		PoolSize:       50,
		SampleSize:     12,
	}
}
