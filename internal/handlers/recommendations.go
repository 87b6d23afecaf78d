package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flicknest/backend/internal/logger"
	"github.com/flicknest/backend/internal/metrics"
	"github.com/flicknest/backend/internal/middleware"
	"github.com/flicknest/backend/internal/util"
)

// GetRecommendations returns a personalized recommendation batch
// GET /api/v1/recommendations?email=user@example.com&profile_name=main
func (h *Handlers) GetRecommendations(c *gin.Context) {
	email := c.Query("email")
	profile := c.Query("profile_name")
	if email == "" || profile == "" {
		util.RespondBadRequest(c, "email and profile_name are required")
		return
	}

	ctx := c.Request.Context()

	catalog, err := h.store.FetchCatalog(ctx)
	if err != nil {
		middleware.RecordError("catalog_fetch", "recommendations")
		util.RespondInternalError(c, "failed to load movie catalog")
		return
	}
	if len(catalog) == 0 {
		util.RespondServiceUnavailable(c, "movie catalog unavailable")
		return
	}

	events, err := h.store.FetchInteractions(ctx)
	if err != nil {
		middleware.RecordError("interactions_fetch", "recommendations")
		util.RespondInternalError(c, "failed to load rating history")
		return
	}

	start := time.Now()
	candidates, mode := h.engine.Recommend(catalog, events, email, profile)
	elapsed := time.Since(start)

	middleware.RecordRecommendation(string(mode), elapsed)
	metrics.Get().CatalogSize.WithLabelValues("mongo").Set(float64(len(catalog)))

	logger.Log.Info("recommendations served",
		logger.WithUserID(email),
		logger.WithProfile(profile),
		zap.String("mode", string(mode)),
		zap.Int("count", len(candidates)),
		zap.Duration("elapsed", elapsed),
	)

	// Track impressions for CTR analysis
	h.tracker.TrackImpressions(email, profile, string(mode), candidates)

	c.JSON(http.StatusOK, gin.H{
		"recommendations": candidates,
		"meta": gin.H{
			"email":        email,
			"profile_name": profile,
			"mode":         string(mode),
			"count":        len(candidates),
		},
	})
}

// TrackRecommendationClick records a user acting on a recommended movie
// POST /api/v1/recommendations/click
// Body: {"email": "...", "profile_name": "...", "movie_id": "...", "source": "community"}
func (h *Handlers) TrackRecommendationClick(c *gin.Context) {
	var req struct {
		Email   string `json:"email" binding:"required"`
		Profile string `json:"profile_name" binding:"required"`
		MovieID string `json:"movie_id" binding:"required"`
		Source  string `json:"source" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid click payload: "+err.Error())
		return
	}

	if err := h.tracker.TrackClick(req.Email, req.Profile, req.MovieID, req.Source); err != nil {
		util.RespondInternalError(c, "failed to track click")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "click_tracked",
		"movie_id": req.MovieID,
		"source":   req.Source,
	})
}

// GetCTRMetrics returns click-through rates per recommendation source
// GET /api/v1/recommendations/ctr?period=24h (24h, 7d, 30d)
func (h *Handlers) GetCTRMetrics(c *gin.Context) {
	if h.tracker == nil {
		util.RespondServiceUnavailable(c, "tracking is not configured")
		return
	}

	period := c.DefaultQuery("period", "24h")

	var since time.Time
	switch period {
	case "24h":
		since = time.Now().Add(-24 * time.Hour)
	case "7d":
		since = time.Now().Add(-7 * 24 * time.Hour)
	case "30d":
		since = time.Now().Add(-30 * 24 * time.Hour)
	default:
		util.RespondBadRequest(c, "period must be one of: 24h, 7d, 30d")
		return
	}

	ctr, err := h.tracker.CalculateCTR(since)
	if err != nil {
		util.RespondInternalError(c, "failed to calculate CTR")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": ctr,
		"period":  period,
		"since":   since,
	})
}
