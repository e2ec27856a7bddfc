package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/ansamedicdent/catalog_api/internal/service"
	"github.com/ansamedicdent/catalog_api/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db        *sqlx.DB
	staticSrc service.StaticSource
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, staticSrc service.StaticSource) *HealthHandler {
	return &HealthHandler{db: db, staticSrc: staticSrc}
}

// GetHealth responds with service, remote store and static catalog status.
// The remote store being down is reported, not fatal: the catalog still
// serves static products in that state.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	remoteStatus := "connected"
	if err := h.db.PingContext(ctx); err != nil {
		remoteStatus = "disconnected"
	}

	staticCount := 0
	if products, err := h.staticSrc.Products(); err == nil {
		staticCount = len(products)
	}

	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"remoteCatalog": gin.H{
			"status": remoteStatus,
		},
		"staticCatalog": gin.H{
			"products": staticCount,
		},
	})
}
