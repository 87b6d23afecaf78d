package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "recommendation-api",
	})
}
