// Package tracking records which recommendations were shown and clicked,
// for click-through-rate reporting. It is deliberately separate from the
// engine: scoring never reads these tables.
package tracking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flicknest/backend/internal/models"
)

// Impression tracks one recommendation shown to a (user, profile) pair.
type Impression struct {
	ID      string `gorm:"primaryKey" json:"id"`
	UserID  string `gorm:"not null;index:idx_impressions_user" json:"user_id"`
	Profile string `gorm:"not null;index:idx_impressions_user" json:"profile"`
	MovieID string `gorm:"not null;index" json:"movie_id"`
	Title   string `json:"title"`

	Source   string  `gorm:"not null;index" json:"source"` // engine mode: cold_start, taste, community
	Position int     `gorm:"not null" json:"position"`     // 0-based position in the response
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Click tracks a user acting on a recommended movie.
type Click struct {
	ID      string `gorm:"primaryKey" json:"id"`
	UserID  string `gorm:"not null;index" json:"user_id"`
	Profile string `gorm:"not null" json:"profile"`
	MovieID string `gorm:"not null;index" json:"movie_id"`
	Source  string `gorm:"not null;index" json:"source"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// CTRMetric is the click-through rate for one recommendation source.
type CTRMetric struct {
	Source      string    `json:"source"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	CTR         float64   `json:"ctr"` // clicks/impressions * 100
	Date        time.Time `json:"date"`
}

// Tracker owns the sqlite tracking database.
type Tracker struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open creates (or opens) the tracking database and migrates its tables.
func Open(path string, log *zap.Logger) (*Tracker, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open tracking db: %w", err)
	}
	if err := db.AutoMigrate(&Impression{}, &Click{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tracking db: %w", err)
	}
	return &Tracker{db: db, log: log}, nil
}

// TrackImpressions records a served recommendation batch asynchronously;
// a tracking failure never blocks or fails the request that produced it.
func (t *Tracker) TrackImpressions(user, profile, source string, candidates []models.Candidate) {
	if t == nil || len(candidates) == 0 {
		return
	}

	impressions := make([]Impression, 0, len(candidates))
	for i, c := range candidates {
		impressions = append(impressions, Impression{
			ID:       uuid.NewString(),
			UserID:   user,
			Profile:  profile,
			MovieID:  c.ID,
			Title:    c.Title,
			Source:   source,
			Position: i,
			Score:    c.PredictedScore,
			Reason:   c.MatchReason,
		})
	}

	go t.insertImpressions(impressions)
}

func (t *Tracker) insertImpressions(impressions []Impression) {
	if err := t.db.CreateInBatches(&impressions, 100).Error; err != nil {
		t.log.Warn("failed to track impressions",
			zap.Int("count", len(impressions)),
			zap.Error(err),
		)
	}
}

// TrackClick records a click on a recommended movie.
func (t *Tracker) TrackClick(user, profile, movieID, source string) error {
	if t == nil {
		return nil
	}
	click := Click{
		ID:      uuid.NewString(),
		UserID:  user,
		Profile: profile,
		MovieID: movieID,
		Source:  source,
	}
	if err := t.db.Create(&click).Error; err != nil {
		return fmt.Errorf("failed to track click: %w", err)
	}
	return nil
}

// CalculateCTR computes per-source click-through rates since the given time.
func (t *Tracker) CalculateCTR(since time.Time) ([]CTRMetric, error) {
	sources := []string{"cold_start", "taste", "community"}

	metrics := make([]CTRMetric, 0, len(sources))
	for _, source := range sources {
		var impressionCount, clickCount int64

		err := t.db.Model(&Impression{}).
			Where("source = ? AND created_at >= ?", source, since).
			Count(&impressionCount).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count impressions for %s: %w", source, err)
		}

		err = t.db.Model(&Click{}).
			Where("source = ? AND created_at >= ?", source, since).
			Count(&clickCount).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count clicks for %s: %w", source, err)
		}

		ctr := 0.0
		if impressionCount > 0 {
			ctr = float64(clickCount) / float64(impressionCount) * 100
		}
		metrics = append(metrics, CTRMetric{
			Source:      source,
			Impressions: impressionCount,
			Clicks:      clickCount,
			CTR:         ctr,
			Date:        time.Now(),
		})
	}
	return metrics, nil
}
