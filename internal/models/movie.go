package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flicknest/backend/internal/normalize"
)

// RawMovie is a catalog document exactly as the store hands it over.
// Genres, year and the imdb rating keep loose types because the upstream
// catalog mixes plain values with extended-JSON tagged wrappers.
type RawMovie struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Genres    interface{}        `bson:"genres" json:"genres"`
	Plot      string             `bson:"plot" json:"plot"`
	FullPlot  string             `bson:"fullplot" json:"fullplot"`
	Cast      []string           `bson:"cast" json:"cast"`
	Directors []string           `bson:"directors" json:"directors"`
	Writers   []string           `bson:"writers" json:"writers"`
	Poster    string             `bson:"poster" json:"poster"`
	Year      interface{}        `bson:"year" json:"year"`
	Runtime   interface{}        `bson:"runtime" json:"runtime"`
	Imdb      RawImdb            `bson:"imdb" json:"imdb"`
}

// RawImdb carries the nested imdb block; only the rating is used.
type RawImdb struct {
	Rating interface{} `bson:"rating" json:"rating"`
}

// RawInteraction is a rating event as stored by the opinion service.
type RawInteraction struct {
	UserID     string      `bson:"user_id" json:"user_id"`
	ProfileID  string      `bson:"profile_id" json:"profile_id"`
	Profile    string      `bson:"profile_name" json:"profile_name"`
	MovieID    string      `bson:"movie_id" json:"movie_id"`
	MovieTitle string      `bson:"movie_title" json:"movie_title"`
	Score      interface{} `bson:"score" json:"score"`
	Timestamp  time.Time   `bson:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Movie is a prepared catalog entry. Quality stays nil when the source
// rating is missing or unparseable; the scorer applies the 5.0 default.
type Movie struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Key       normalize.TitleKey `json:"-"`
	Quality   *float64           `json:"imdb_rating,omitempty"`
	Genres    string             `json:"genres"`
	Plot      string             `json:"plot"`
	Directors []string           `json:"directors"`
	Poster    string             `json:"poster,omitempty"`
	Cast      []string           `json:"cast,omitempty"`
	Writers   []string           `json:"writers,omitempty"`
	Year      int                `json:"year,omitempty"`
	Runtime   int                `json:"runtime,omitempty"`
}

// Interaction is one surviving (user, profile, movie) rating joined with
// its catalog context.
type Interaction struct {
	UserID    string
	Profile   string
	Key       normalize.TitleKey
	Title     string
	Score     float64
	Timestamp time.Time

	// Catalog context attached by the interaction preparer.
	Genres    string
	Plot      string
	Directors []string
	Quality   *float64
}

// TasteProfile is rebuilt from scratch for every request and never stored.
type TasteProfile struct {
	FavoriteGenres    []string
	FavoriteDirectors []string
	PlotCorpus        string
}

// Candidate is an unseen movie with its component scores, the blended
// prediction and the reason label shown to the user.
type Candidate struct {
	Movie
	ScoreSocial    float64 `json:"score_social"`
	ScoreGenre     float64 `json:"score_genre"`
	ScoreDirector  float64 `json:"score_director"`
	ScorePlot      float64 `json:"score_plot"`
	ScoreQuality   float64 `json:"score_quality"`
	PredictedScore float64 `json:"predicted_score"`
	MatchReason    string  `json:"match_reason"`
}
